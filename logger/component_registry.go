package logger

import (
	"strings"
	"time"
)

// ComponentRegistry tracks components during bootstrap for summary display.
type ComponentRegistry struct {
	startTime      time.Time
	infrastructure []InfraComponent
	services       []ServiceComponent
	clients        []ClientComponent
	handlers       []HandlerComponent
	// apiPrefix holds the configured API prefix (eg: /v1)
	apiPrefix string
}

// InfraComponent represents a host-level dependency (audio device, status
// file, runtime lock, sound player).
type InfraComponent struct {
	Name    string
	Type    string // "audio", "file", "lock", "player", "server"
	Status  string // "active", "inactive", "error"
	Details string
}

// ServiceComponent represents a daemon subsystem (pipeline, vad, models...).
type ServiceComponent struct {
	Name         string
	Status       string // "lazy", "initialized", "active"
	Dependencies []string
}

// ClientComponent represents an external endpoint (LLM server, whisper sidecar).
type ClientComponent struct {
	Name   string
	Target string // "http://localhost:11434/v1", "whisper-cli"
	Status string
}

// HandlerComponent represents a control-API route.
type HandlerComponent struct {
	Method  string // "GET", "POST", etc.
	Path    string
	Handler string
}

// ComponentRegistryInstance is the global component registry.
var ComponentRegistryInstance = NewComponentRegistry()

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		startTime:      time.Now(),
		infrastructure: make([]InfraComponent, 0),
		services:       make([]ServiceComponent, 0),
		clients:        make([]ClientComponent, 0),
		handlers:       make([]HandlerComponent, 0),
	}
}

// SetAPIPrefix sets the API prefix (for example "/v1") so route grouping
// can be done using the configured prefix instead of hard-coded values.
func (r *ComponentRegistry) SetAPIPrefix(prefix string) {
	r.apiPrefix = strings.TrimRight(prefix, "/")
}

// APIPrefix returns the configured API prefix.
func (r *ComponentRegistry) APIPrefix() string {
	return r.apiPrefix
}

// StartTime returns the registry creation time (bootstrap start).
func (r *ComponentRegistry) StartTime() time.Time {
	return r.startTime
}

// RegisterInfrastructure registers an infrastructure component.
func (r *ComponentRegistry) RegisterInfrastructure(name, componentType, status, details string) {
	r.infrastructure = append(r.infrastructure, InfraComponent{
		Name:    name,
		Type:    componentType,
		Status:  status,
		Details: details,
	})
}

// RegisterService registers a service component.
func (r *ComponentRegistry) RegisterService(name, status string, dependencies []string) {
	r.services = append(r.services, ServiceComponent{
		Name:         name,
		Status:       status,
		Dependencies: dependencies,
	})
}

// RegisterClient registers an external client.
func (r *ComponentRegistry) RegisterClient(name, target, status string) {
	r.clients = append(r.clients, ClientComponent{
		Name:   name,
		Target: target,
		Status: status,
	})
}

// RegisterHandler registers a control-API handler.
func (r *ComponentRegistry) RegisterHandler(method, path, handler string) {
	r.handlers = append(r.handlers, HandlerComponent{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
}

// Infrastructure returns all registered infrastructure components.
func (r *ComponentRegistry) Infrastructure() []InfraComponent {
	return r.infrastructure
}

// Services returns all registered service components.
func (r *ComponentRegistry) Services() []ServiceComponent {
	return r.services
}

// Clients returns all registered client components.
func (r *ComponentRegistry) Clients() []ClientComponent {
	return r.clients
}

// Handlers returns all registered handler components.
func (r *ComponentRegistry) Handlers() []HandlerComponent {
	return r.handlers
}

// SetHandlers replaces the handler list (useful when collecting routes dynamically).
func (r *ComponentRegistry) SetHandlers(handlers []HandlerComponent) {
	r.handlers = handlers
}
