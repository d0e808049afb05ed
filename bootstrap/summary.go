package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/voxd/component"
	"github.com/kbukum/voxd/logger"
)

// ComponentStatus holds the tracked status of a component during bootstrap.
type ComponentStatus struct {
	Name    string
	Status  string
	Healthy bool
}

// ServiceInfo holds detailed information about a daemon service.
type ServiceInfo struct {
	Name    string
	Type    string // e.g. "server", "audio", "models", "trigger"
	Status  string
	Details string
	Port    int
	Healthy bool
}

// ModelInfo represents a whisper model known to the model manager.
type ModelInfo struct {
	Name   string
	Status string // "present", "missing", "downloading"
	SizeMB int
	Active bool
}

// TriggerInfo represents a dictation trigger binding.
type TriggerInfo struct {
	Kind    string // "hotkey", "signal", "api"
	Binding string
	Status  string
}

// RouteInfo represents a registered control API route.
type RouteInfo struct {
	Method  string
	Path    string
	Handler string
}

// ClientInfo represents an external endpoint the daemon talks to.
type ClientInfo struct {
	Name   string
	Target string
	Status string
	Type   string // "http", "cli"
}

// Summary tracks and displays the daemon bootstrap process.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	components      []ComponentStatus
	services        []ServiceInfo
	models          []ModelInfo
	triggers        []TriggerInfo
	routes          []RouteInfo
	clients         []ClientInfo
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		components:  make([]ComponentStatus, 0),
		services:    make([]ServiceInfo, 0),
		models:      make([]ModelInfo, 0),
		triggers:    make([]TriggerInfo, 0),
		routes:      make([]RouteInfo, 0),
		clients:     make([]ClientInfo, 0),
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackComponent adds a component's bootstrap status to the summary.
func (s *Summary) TrackComponent(name, status string, healthy bool) {
	s.components = append(s.components, ComponentStatus{
		Name:    name,
		Status:  status,
		Healthy: healthy,
	})
}

// TrackService adds a daemon service with detailed metadata.
func (s *Summary) TrackService(name, serviceType, status, details string, port int, healthy bool) {
	s.services = append(s.services, ServiceInfo{
		Name:    name,
		Type:    serviceType,
		Status:  status,
		Details: details,
		Port:    port,
		Healthy: healthy,
	})
}

// TrackModel records a whisper model and its download state.
func (s *Summary) TrackModel(name, status string, sizeMB int, active bool) {
	s.models = append(s.models, ModelInfo{
		Name:   name,
		Status: status,
		SizeMB: sizeMB,
		Active: active,
	})
}

// TrackTrigger records a dictation trigger binding.
func (s *Summary) TrackTrigger(kind, binding, status string) {
	s.triggers = append(s.triggers, TriggerInfo{
		Kind:    kind,
		Binding: binding,
		Status:  status,
	})
}

// TrackRoute records a control API route.
func (s *Summary) TrackRoute(method, path, handler string) {
	s.routes = append(s.routes, RouteInfo{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
}

// TrackClient records an external endpoint connection.
func (s *Summary) TrackClient(name, target, status, clientType string) {
	s.clients = append(s.clients, ClientInfo{
		Name:   name,
		Target: target,
		Status: status,
		Type:   clientType,
	})
}

// collectFromRegistry auto-discovers services and routes from components that
// implement Describable or RouteProvider.
func (s *Summary) collectFromRegistry(registry *component.Registry) {
	if registry == nil {
		return
	}
	for _, c := range registry.All() {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			h := c.Health(context.Background())
			s.TrackService(desc.Name, desc.Type, string(h.Status), desc.Details, desc.Port,
				h.Status == component.StatusHealthy)
		}
		if rp, ok := c.(component.RouteProvider); ok {
			for _, r := range rp.Routes() {
				s.TrackRoute(r.Method, r.Path, r.Handler)
			}
		}
	}
}

// DisplaySummary prints the bootstrap summary. Services and routes are
// auto-collected from the registry; health is read live.
func (s *Summary) DisplaySummary(registry *component.Registry, log *logger.Logger) {
	s.collectFromRegistry(registry)

	// Header
	fmt.Printf("\n")
	fmt.Printf("🎙️ %s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	// Services (detailed)
	if len(s.services) > 0 {
		fmt.Printf("📊 Services\n")
		for i, svc := range s.services {
			icon := statusIcon(svc.Status, svc.Healthy)
			details := svc.Details
			if svc.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, svc.Port)
			}
			fmt.Printf("   %s %s %s: %s\n", treePrefix(i, len(s.services)), icon, svc.Name, details)
		}
		fmt.Printf("\n")
	}

	// Components
	if len(s.components) > 0 {
		fmt.Printf("📦 Components\n")
		healthy := 0
		for i, c := range s.components {
			icon := statusIcon(c.Status, c.Healthy)
			fmt.Printf("   %s %s %s (%s)\n", treePrefix(i, len(s.components)), icon, c.Name, c.Status)
			if c.Healthy {
				healthy++
			}
		}
		fmt.Printf("\n")

		total := len(s.components)
		if healthy == total {
			fmt.Printf("✅ All components healthy (%d/%d)\n", healthy, total)
		} else {
			fmt.Printf("⚠️  Some components have issues (%d/%d healthy)\n", healthy, total)
		}
	}

	if len(s.services) == 0 && len(s.components) == 0 {
		fmt.Printf("   └── No components registered\n")
	}

	// Models
	if len(s.models) > 0 {
		fmt.Printf("\n🧠 Models\n")
		for i, m := range s.models {
			size := ""
			if m.SizeMB > 0 {
				size = fmt.Sprintf(", %d MB", m.SizeMB)
			}
			fmt.Printf("   %s %s %s (%s%s)\n", treePrefix(i, len(s.models)), modelIcon(m.Status, m.Active), m.Name, m.Status, size)
		}
	}

	// Triggers
	if len(s.triggers) > 0 {
		fmt.Printf("\n⌨️  Triggers\n")
		for i, tr := range s.triggers {
			fmt.Printf("   %s %s %s: %s [%s]\n", treePrefix(i, len(s.triggers)), triggerIcon(tr.Kind), tr.Kind, tr.Binding, tr.Status)
		}
	}

	// Routes
	if len(s.routes) > 0 {
		fmt.Printf("\n🌐 Routes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Printf("   %s %s%-7s%s %s → %s\n", treePrefix(i, len(s.routes)),
				methodColor(r.Method), r.Method, colorReset, r.Path, r.Handler)
		}
	}

	// Clients
	if len(s.clients) > 0 {
		fmt.Printf("\n🔌 Clients\n")
		for i, c := range s.clients {
			fmt.Printf("   %s %s → %s [%s] (%s)\n", treePrefix(i, len(s.clients)), c.Name, c.Target, c.Type, c.Status)
		}
	}

	// Live health check
	if registry != nil {
		healthResults := registry.HealthAll(context.Background())
		if len(healthResults) > 0 {
			fmt.Printf("\n🏥 Health Check\n")
			for i, h := range healthResults {
				icon := healthStatusIcon(h.Status)
				msg := ""
				if h.Message != "" {
					msg = fmt.Sprintf(" — %s", h.Message)
				}
				fmt.Printf("   %s %s %s: %s%s\n", treePrefix(i, len(healthResults)), icon, h.Name, strings.ToLower(string(h.Status)), msg)
			}
		}
	}

	fmt.Printf("\n")
}

// treePrefix returns the branch glyph for item i of n.
func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

const colorReset = "\033[0m"

// methodColor returns the ANSI color code for an HTTP method.
func methodColor(method string) string {
	switch method {
	case "GET":
		return "\033[32m"
	case "POST":
		return "\033[36m"
	case "PUT":
		return "\033[33m"
	case "PATCH":
		return "\033[35m"
	case "DELETE":
		return "\033[31m"
	default:
		return "\033[37m"
	}
}

func statusIcon(status string, healthy bool) string {
	if !healthy {
		return "❌"
	}
	switch status {
	case "active", "initialized", "connected", "healthy":
		return "✅"
	case "lazy":
		return "⚡"
	case "inactive", "disabled":
		return "⏸️"
	case "error", "failed":
		return "❌"
	default:
		return "⚠️"
	}
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}

func modelIcon(status string, active bool) string {
	if active {
		return "🎯"
	}
	switch status {
	case "present":
		return "✅"
	case "downloading":
		return "⬇️"
	case "missing":
		return "⚪"
	default:
		return "❓"
	}
}

func triggerIcon(kind string) string {
	switch kind {
	case "hotkey":
		return "⌨️"
	case "signal":
		return "📡"
	case "api":
		return "🌐"
	default:
		return "🔘"
	}
}
