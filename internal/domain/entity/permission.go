package entity

// Resource identifies an OS-protected resource the app needs access to.
type Resource string

const (
	// ResourceCamera gates photo capture.
	ResourceCamera Resource = "camera"

	// ResourcePhotoLibrary gates picking existing images.
	ResourcePhotoLibrary Resource = "photo_library"

	// ResourceNotifications gates completion notifications.
	ResourceNotifications Resource = "notifications"
)

// AllResources returns every resource in display order.
func AllResources() []Resource {
	return []Resource{ResourceCamera, ResourcePhotoLibrary, ResourceNotifications}
}

// ParseResource converts user input into a Resource.
func ParseResource(s string) (Resource, bool) {
	switch s {
	case string(ResourceCamera):
		return ResourceCamera, true
	case string(ResourcePhotoLibrary), "photos", "library":
		return ResourcePhotoLibrary, true
	case string(ResourceNotifications), "notification":
		return ResourceNotifications, true
	default:
		return "", false
	}
}

// AuthorizationStatus is the OS-reported permission tier for a resource.
type AuthorizationStatus string

const (
	// StatusNotDetermined means the user has not been asked yet.
	StatusNotDetermined AuthorizationStatus = "not_determined"

	// StatusAuthorized means full access.
	StatusAuthorized AuthorizationStatus = "authorized"

	// StatusLimited means partial access. Only the photo library has it.
	StatusLimited AuthorizationStatus = "limited"

	// StatusDenied means the user refused access.
	StatusDenied AuthorizationStatus = "denied"

	// StatusRestricted means access is blocked by policy or the platform.
	StatusRestricted AuthorizationStatus = "restricted"
)

// ParseAuthorizationStatus maps a stored status string back to the closed set.
// Anything unrecognized becomes StatusRestricted.
func ParseAuthorizationStatus(s string) AuthorizationStatus {
	switch AuthorizationStatus(s) {
	case StatusNotDetermined, StatusAuthorized, StatusLimited, StatusDenied, StatusRestricted:
		return AuthorizationStatus(s)
	default:
		return StatusRestricted
	}
}

// IsResolved reports whether the OS will not show a prompt for this status.
func (s AuthorizationStatus) IsResolved() bool {
	switch s {
	case StatusAuthorized, StatusDenied, StatusRestricted:
		return true
	default:
		return false
	}
}

// Action is what the UI should do next for a gated resource.
type Action string

const (
	// ActionProceed lets the user reach the resource.
	ActionProceed Action = "proceed"
	// ActionShowInAppPrompt explains the permission before the OS asks.
	ActionShowInAppPrompt Action = "show_in_app_prompt"
	// ActionRequestOSAuthorization asks the OS directly.
	ActionRequestOSAuthorization Action = "request_os_authorization"
	// ActionRedirectToSettings offers to open the system settings.
	ActionRedirectToSettings Action = "redirect_to_settings"
	// ActionNoOp leaves the UI unchanged.
	ActionNoOp Action = "noop"
)

// Decide maps a resource and its current status to the next UI action.
//
// The photo library differs from camera and notifications: it has a Limited
// tier worth upgrading, and a denied photo library is redirected to settings
// because picking images is the primary action of the app. Denied camera or
// notification access stays silent.
func Decide(resource Resource, status AuthorizationStatus) Action {
	if resource == ResourcePhotoLibrary {
		switch status {
		case StatusNotDetermined, StatusLimited:
			return ActionRequestOSAuthorization
		case StatusAuthorized:
			return ActionProceed
		default:
			return ActionRedirectToSettings
		}
	}

	switch status {
	case StatusNotDetermined:
		return ActionShowInAppPrompt
	case StatusAuthorized:
		return ActionProceed
	default:
		// Limited has no meaning here and is handled like Restricted.
		return ActionNoOp
	}
}

// DecideResolved picks the action after an OS authorization request returned.
// It never asks the OS again: a photo library still Limited after the request
// proceeds with partial access, and a still undetermined status means the
// prompt was dismissed.
func DecideResolved(resource Resource, status AuthorizationStatus) Action {
	switch status {
	case StatusNotDetermined:
		return ActionNoOp
	case StatusLimited:
		if resource == ResourcePhotoLibrary {
			return ActionProceed
		}
		return ActionNoOp
	default:
		return Decide(resource, status)
	}
}

// PermissionState is the gate's last observation for one resource.
type PermissionState struct {
	Resource          Resource
	Status            AuthorizationStatus
	Action            Action
	ShowRequestPrompt bool
	// PromptDeclined is set when the user dismissed the in-app prompt during
	// the current screen-appearance cycle.
	PromptDeclined bool
	// RequestInFlight is set while an OS authorization request is outstanding.
	RequestInFlight bool
}

// PermissionRecord is a status persisted by the local authorization backend.
type PermissionRecord struct {
	Resource  Resource
	Status    AuthorizationStatus
	UpdatedAt int64 // Unix seconds
}

// IsGranted returns true if the record grants full or partial access.
func (p *PermissionRecord) IsGranted() bool {
	return p.Status == StatusAuthorized || p.Status == StatusLimited
}

// IsDenied returns true if the record blocks access.
func (p *PermissionRecord) IsDenied() bool {
	return p.Status == StatusDenied || p.Status == StatusRestricted
}

// ResourcesToStrings converts resources to strings for logging.
func ResourcesToStrings(resources []Resource) []string {
	result := make([]string, len(resources))
	for i, r := range resources {
		result[i] = string(r)
	}
	return result
}
