//go:build windows

package pathreg

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

const (
	hwndBroadcast      = 0xFFFF
	wmSettingChange    = 0x001A
	smtoAbortIfHung    = 0x0002
	broadcastTimeoutMs = 5000
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSendMessageTimeoutW = user32.NewProc("SendMessageTimeoutW")
)

// userEnvironment is HKEY_CURRENT_USER\Environment.
type userEnvironment struct{}

// NewRegistry returns the current user's environment registry key.
func NewRegistry() Registry {
	return userEnvironment{}
}

func (userEnvironment) ReadPath() (string, bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.QUERY_VALUE)
	if err != nil {
		return "", false, fmt.Errorf(messages.PathregOpenRegistryFmt, err)
	}
	defer func() { _ = key.Close() }()

	value, _, err := key.GetStringValue("PATH")
	if errors.Is(err, registry.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf(messages.PathregReadRegistryFmt, err)
	}
	return value, true, nil
}

func (userEnvironment) WritePath(value string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf(messages.PathregOpenRegistryFmt, err)
	}
	defer func() { _ = key.Close() }()

	if err := key.SetExpandStringValue("PATH", value); err != nil {
		return fmt.Errorf(messages.PathregWriteRegistryFmt, err)
	}
	return nil
}

// Broadcast sends WM_SETTINGCHANGE for "Environment" to all top-level windows.
func (userEnvironment) Broadcast() error {
	if err := procSendMessageTimeoutW.Find(); err != nil {
		return err
	}
	param, err := windows.UTF16PtrFromString("Environment")
	if err != nil {
		return err
	}
	var result uintptr
	ret, _, callErr := procSendMessageTimeoutW.Call(
		hwndBroadcast,
		wmSettingChange,
		0,
		uintptr(unsafe.Pointer(param)),
		smtoAbortIfHung,
		broadcastTimeoutMs,
		uintptr(unsafe.Pointer(&result)),
	)
	if ret == 0 {
		return fmt.Errorf(messages.PathregBroadcastFailedFmt, callErr)
	}
	return nil
}
