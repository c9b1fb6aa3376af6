package logx_hooks

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

type format struct{}

// NewPostFormat prefixes entries built with WithFields so they read like the
// "[catalog] ..." lines logged directly.
func NewPostFormat() logrus.Hook {
	return &format{}
}

func (f *format) Fire(entry *logrus.Entry) error {
	if entry == nil || len(entry.Data) == 0 {
		return nil
	}
	if strings.HasPrefix(entry.Message, "[") {
		// pass
		return nil
	}
	prefix := ""
	if catalog, ok := entry.Data["catalog"]; ok {
		prefix += fmt.Sprintf("[%v] ", catalog)
	}
	if reqID, ok := entry.Data["reqId"]; ok {
		prefix += fmt.Sprintf("Req[%v] ", reqID)
	}
	if gen, ok := entry.Data["gen"]; ok {
		prefix += fmt.Sprintf("Poll[%v] ", gen)
	}
	entry.Message = prefix + entry.Message
	return nil
}

func (f *format) Levels() []logrus.Level {
	return []logrus.Level{logrus.DebugLevel, logrus.InfoLevel, logrus.WarnLevel, logrus.ErrorLevel, logrus.FatalLevel}
}
