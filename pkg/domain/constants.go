package domain

// ReadyState is the single implicit control state of adapter components.
const ReadyState ControlState = "READY"

// Drop reasons reported through LifecycleHooks.OnDrop.
const (
	DropUnmatched     = "unmatched"
	DropUndecodable   = "undecodable"
	DropUnencodable   = "unencodable"
	DropQueueFull     = "queue_full"
	DropPublishFailed = "publish_failed"
)
