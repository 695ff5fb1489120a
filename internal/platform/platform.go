// Package platform identifies the host runtime the client is embedded in.
// The host application supplies a Platform value at startup; Detect exists
// for hosts that want environment-based selection and is the only place any
// sniffing happens.
package platform

import (
	"os"
	"strings"
)

// Platform is an explicit capability value describing the host environment.
type Platform string

const (
	WeChat  Platform = "wechat"
	Alipay  Platform = "alipay"
	Web     Platform = "web"
	Unknown Platform = "unknown"
)

// MiniProgram reports whether the platform routes calls through a host
// bridge rather than plain HTTP.
func (p Platform) MiniProgram() bool {
	return p == WeChat || p == Alipay
}

// Detect reads PROCURE_PLATFORM from the environment. Unrecognised or unset
// values map to Unknown so that adapter selection fails fast instead of
// silently assuming one platform's behavior.
func Detect() Platform {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PROCURE_PLATFORM"))) {
	case "wechat", "weixin":
		return WeChat
	case "alipay":
		return Alipay
	case "web", "h5":
		return Web
	default:
		return Unknown
	}
}
