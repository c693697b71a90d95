package keepalive

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// CleanupManager runs registered cleanup steps once, in order, within a timeout.
type CleanupManager struct {
	mu          sync.Mutex
	resources   []CleanupResource
	timeout     time.Duration
	cleanupOnce sync.Once
	result      error
}

// CleanupResource represents a resource that needs cleanup
type CleanupResource interface {
	Cleanup() error
	Name() string
}

// CleanupFunc is a function-based cleanup resource
type CleanupFunc struct {
	name string
	fn   func() error
}

func (c *CleanupFunc) Cleanup() error {
	return c.fn()
}

func (c *CleanupFunc) Name() string {
	return c.name
}

// NewCleanupManager creates a new cleanup manager with the specified timeout
func NewCleanupManager(timeout time.Duration) *CleanupManager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CleanupManager{timeout: timeout}
}

// Register adds a resource to be cleaned up
func (cm *CleanupManager) Register(resource CleanupResource) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = append(cm.resources, resource)
}

// RegisterFunc registers a cleanup function
func (cm *CleanupManager) RegisterFunc(name string, fn func() error) {
	cm.Register(&CleanupFunc{name: name, fn: fn})
}

// Execute cleans up every registered resource and returns the joined errors.
// Later calls return the result of the first one.
func (cm *CleanupManager) Execute() error {
	cm.cleanupOnce.Do(func() {
		cm.result = cm.executeWithTimeout()
	})
	return cm.result
}

func (cm *CleanupManager) executeWithTimeout() error {
	cm.mu.Lock()
	resources := append([]CleanupResource(nil), cm.resources...)
	cm.mu.Unlock()

	if len(resources) == 0 {
		return nil
	}

	// Buffered so the worker never blocks after a timeout.
	done := make(chan error, 1)
	go func() {
		var errs []error
		for _, resource := range resources {
			if err := runCleanup(resource); err != nil {
				log.Printf("cleanup: error cleaning up %s: %v", resource.Name(), err)
				errs = append(errs, err)
				continue
			}
			log.Printf("cleanup: cleaned up %s", resource.Name())
		}
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(cm.timeout):
		log.Printf("cleanup: timeout after %v, some resources may not have been cleaned up", cm.timeout)
		return errors.New("cleanup timeout exceeded")
	}
}

func runCleanup(resource CleanupResource) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during cleanup of %s: %v", resource.Name(), r)
		}
	}()
	return resource.Cleanup()
}

// Clear removes all registered resources without executing cleanup
func (cm *CleanupManager) Clear() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = cm.resources[:0]
}
