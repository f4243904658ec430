package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCamera  = "\uf030" // camera
	IconImage   = "\uf1c5" // image file
	IconBell    = "\uf0f3" // bell
	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info
	IconLock    = "\uf023" // lock
	IconConfig  = "\ue615" // config
	IconClock   = "\uf017" // clock
	IconTrash   = "\uf1f8" // trash
	IconCursor  = "\uf054" // chevron-right
	IconVersion = "\uf02b" // tag
	IconGo      = "\ue627" // go gopher
)
