// Package shutdown coordinates orderly teardown of application components
// on window close or termination signal.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"kp-dashboard/internal/logger"
)

// componentTimeout bounds how long one component may take to shut down.
const componentTimeout = 5 * time.Second

type Shutdownable interface {
	Shutdown()
}

type registration struct {
	name      string
	component Shutdownable
}

// Manager shuts registered components down in reverse registration order,
// each guarded by a timeout.
type Manager struct {
	components []registration
	log        logger.Logger
	mu         sync.Mutex
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewManager(log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	if log == nil {
		log = logger.NewNop()
	}

	return &Manager{
		log:    log,
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (m *Manager) Register(name string, component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, registration{name: name, component: component})
}

// Listen triggers Shutdown on SIGINT/SIGTERM so a terminal kill flushes
// state the same way closing the window does.
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigChan
		m.log.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
		m.Shutdown()
	}()
}

func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.log.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		reg := m.components[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			reg.component.Shutdown()
		}()

		select {
		case <-finished:
			m.log.Debug("ShutdownManager", "component shutdown completed", map[string]interface{}{
				"component": reg.name,
			})
		case <-time.After(componentTimeout):
			m.log.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component": reg.name,
			})
		}
	}

	m.log.Info("ShutdownManager", "shutdown sequence completed", nil)
}

func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
