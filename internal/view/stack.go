package view

import "sync"

const (
	StackPush = 1 << iota
	StackPop
)

type StackListener interface {
	StackPushed(Component)
	StackPopped(Component, Component)
}

// Stack represents a stacks of components.
type Stack struct {
	components []Component
	listeners  []StackListener
	mx         sync.RWMutex
}

func NewStack() *Stack {
	return &Stack{
		components: make([]Component, 0, 2),
		listeners:  make([]StackListener, 0, 2),
	}
}

func (s *Stack) AddListener(l StackListener) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.listeners = append(s.listeners, l)
}

// Top returns the top most item
func (s *Stack) Top() Component {
	s.mx.RLock()
	defer s.mx.RUnlock()
	if len(s.components) == 0 {
		return nil
	}
	return s.components[len(s.components)-1]
}

func (s *Stack) Empty() bool {
	return s.Top() == nil
}

func (s *Stack) Push(c Component) {
	if top := s.Top(); top != nil {
		top.Stop()
	}

	s.mx.Lock()
	s.components = append(s.components, c)
	s.mx.Unlock()
	c.Start()
	s.notify(c, StackPush)
}

func (s *Stack) Pop() Component {
	s.mx.Lock()
	if len(s.components) == 0 {
		s.mx.Unlock()
		return nil
	}
	c := s.components[len(s.components)-1]
	s.components = s.components[:len(s.components)-1]
	s.mx.Unlock()

	c.Stop()
	s.notify(c, StackPop)
	if top := s.Top(); top != nil {
		top.Start()
	}
	return c
}

func (s *Stack) Clear() {
	for s.Pop() != nil {
	}
}

func (s *Stack) notify(c Component, action int) {
	s.mx.RLock()
	listeners := append([]StackListener(nil), s.listeners...)
	s.mx.RUnlock()

	for _, l := range listeners {
		switch action {
		case StackPush:
			l.StackPushed(c)
		case StackPop:
			l.StackPopped(c, s.Top())
		}
	}
}
