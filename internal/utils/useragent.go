package utils

import "xojoc.pw/useragent"

type DeviceInfo struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

// ParseDevice summarizes a raw user-agent header for dashboard rows.
func ParseDevice(ua string) DeviceInfo {
	info := DeviceInfo{OS: "Unknown", Browser: "Unknown", Device: "Unknown"}
	if ua == "" {
		return info
	}

	agent := useragent.Parse(ua)
	if agent == nil {
		return info
	}

	if agent.OS != "" {
		info.OS = agent.OS
	}
	if agent.Name != "" {
		info.Browser = agent.Name
	}

	if agent.Mobile || agent.Tablet {
		info.Device = "Mobile"
	} else {
		info.Device = "Desktop"
	}

	return info
}
