package engine

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/internal/engine/types"
	"github.com/xiaorui77/ifacex-watch/internal/storage"
)

// Gate picks the first view of a cold start: Main when both credentials are
// stored, Login otherwise.
func Gate(store storage.Store) types.Route {
	creds, err := store.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logrus.Warnf("[session] load credentials failed: %v", err)
		}
		return types.RouteLogin
	}
	if !creds.Present() {
		return types.RouteLogin
	}
	return types.RouteMain
}
