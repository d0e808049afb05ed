package audio

import (
	"strings"

	"github.com/gordonklaus/portaudio"
)

// pickDevice selects the capture device. Order: exact PortAudio index,
// case-insensitive name prefix, system default input, first input device.
// Devices without input channels are skipped. Returns nil when nothing can
// capture. The second return names the rule that matched, for logging.
func pickDevice(devices []*portaudio.DeviceInfo, def *portaudio.DeviceInfo, index *int, name string) (*portaudio.DeviceInfo, string) {
	if index != nil {
		if i := *index; i >= 0 && i < len(devices) && devices[i].MaxInputChannels > 0 {
			return devices[i], "index"
		}
	}
	if name != "" {
		prefix := strings.ToLower(name)
		for _, d := range devices {
			if d.MaxInputChannels > 0 && strings.HasPrefix(strings.ToLower(d.Name), prefix) {
				return d, "name"
			}
		}
	}
	if def != nil && def.MaxInputChannels > 0 {
		return def, "default"
	}
	for _, d := range devices {
		if d.MaxInputChannels > 0 {
			return d, "first"
		}
	}
	return nil, ""
}
