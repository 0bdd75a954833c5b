package media

// Attachment is a two-phase image value. PreviewPath points at the local
// file shown while an upload is pending; CommittedURL is set only once the
// hosting service has resolved. Persisting code must only ever store
// CommittedURL, so a local path can never be sent to the server.
type Attachment struct {
	PreviewPath  string `json:"-"`
	CommittedURL string `json:"url"`
}

func (a Attachment) Committed() bool { return a.CommittedURL != "" }
