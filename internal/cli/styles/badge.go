package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/retouch/internal/domain/entity"
)

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// StatusBadge renders an authorization status in its semantic color.
func (t *Theme) StatusBadge(status entity.AuthorizationStatus) string {
	var bg lipgloss.Color
	switch status {
	case entity.StatusAuthorized:
		bg = t.Success
	case entity.StatusLimited, entity.StatusNotDetermined:
		bg = t.Warning
	default:
		bg = t.Error
	}
	return lipgloss.NewStyle().
		Foreground(t.Background).
		Background(bg).
		Padding(0, 1).
		Render(StatusLabel(status))
}

// StatusLabel returns the display text for a status.
func StatusLabel(status entity.AuthorizationStatus) string {
	switch status {
	case entity.StatusNotDetermined:
		return "not asked"
	case entity.StatusAuthorized:
		return "allowed"
	case entity.StatusLimited:
		return "limited"
	case entity.StatusDenied:
		return "denied"
	default:
		return "restricted"
	}
}

// ResourceLabel returns the display name of a resource with its icon.
func ResourceLabel(r entity.Resource) string {
	switch r {
	case entity.ResourceCamera:
		return IconCamera + " Camera"
	case entity.ResourcePhotoLibrary:
		return IconImage + " Photo library"
	case entity.ResourceNotifications:
		return IconBell + " Notifications"
	default:
		return string(r)
	}
}

// RelativeTime formats a time relative to now.
func RelativeTime(tm time.Time) string {
	return relativeTime(tm, time.Now())
}

func relativeTime(tm, now time.Time) string {
	diff := now.Sub(tm)

	plural := func(n int, unit string) string {
		return fmt.Sprintf("%d%s ago", n, unit)
	}

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "m")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "h")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "d")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/(24*7)), "w")
	case diff < 365*24*time.Hour:
		return plural(int(diff.Hours()/(24*30)), "mo")
	default:
		return plural(int(diff.Hours()/(24*365)), "y")
	}
}
