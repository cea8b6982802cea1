package integrations

import (
	"fmt"
	"sync"

	"bus-admin/internal/integrations/email"
)

// RegistryInterface хранит почтовых провайдеров и активного из них.
type RegistryInterface interface {
	Register(sender email.Sender) error
	Get(name string) (email.Sender, error)
	SetActive(name string) error
	GetActive() (email.Sender, error)
}

type Registry struct {
	senders map[string]email.Sender
	active  string
	mu      sync.RWMutex
}

func NewRegistry() RegistryInterface {
	return &Registry{
		senders: make(map[string]email.Sender),
	}
}

func (r *Registry) Register(sender email.Sender) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := sender.Name()
	if _, exists := r.senders[name]; exists {
		return fmt.Errorf("email provider '%s' is already registered", name)
	}
	r.senders[name] = sender
	return nil
}

func (r *Registry) Get(name string) (email.Sender, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sender, exists := r.senders[name]
	if !exists {
		return nil, fmt.Errorf("email provider '%s' not found", name)
	}
	return sender, nil
}

func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.senders[name]; !exists {
		return fmt.Errorf("cannot activate email provider '%s': not registered", name)
	}
	r.active = name
	return nil
}

func (r *Registry) GetActive() (email.Sender, error) {
	r.mu.RLock()
	activeName := r.active
	r.mu.RUnlock()

	if activeName == "" {
		return nil, fmt.Errorf("no active email provider")
	}
	return r.Get(activeName)
}
