package metadata

// Recognized metadata keys shared by the provider and this package.
const (
	KeyStatus      = "status"
	KeyPriority    = "priority"
	KeyDueDate     = "due_date"
	KeyOwner       = "owner"
	KeyURL         = "url"
	KeyMimeType    = "mime_type"
	KeyConfidence  = "confidence"
	KeyOccurrences = "occurrences"
)

// EntityMetadata provides typed access to common per-entity metadata fields.
// The backend attaches differing key/value bags per entity type (a task has a
// status and due date, a document has a URL and mime type, a pattern has a
// confidence score). This helper gives compile-time safety for the known
// fields of each variant while preserving everything else in Extra for
// forward compatibility.
//
// Usage:
//
//	typed := metadata.FromMap(node.Meta)
//	if typed.Status != "" {
//	    fmt.Println("Status:", typed.Status)
//	}
type EntityMetadata struct {
	// Status is the workflow state of a task or project (e.g., "active").
	Status string

	// Priority is the backend-assigned priority of a task ("low".."urgent").
	Priority string

	// DueDate is the task due date in RFC 3339 date form.
	DueDate string

	// Owner is the assignee or author identifier.
	Owner string

	// URL is the source location of a document.
	URL string

	// MimeType is the document content type.
	MimeType string

	// Confidence is the detection confidence of a pattern, in [0, 1].
	Confidence float64

	// Occurrences is the number of times a pattern was observed.
	Occurrences int

	// Extra holds additional metadata not covered by typed fields.
	// This preserves arbitrary provider data for round trips.
	Extra map[string]any
}

// FromMap converts a raw metadata map to typed EntityMetadata.
// Unknown fields are preserved in the Extra map.
//
// Safe to call with nil input - returns a zero EntityMetadata.
func FromMap(m map[string]any) EntityMetadata {
	if m == nil {
		return EntityMetadata{}
	}

	typed := EntityMetadata{
		Extra: make(map[string]any),
	}

	for k, v := range m {
		switch k {
		case KeyStatus:
			typed.Status, _ = v.(string)
		case KeyPriority:
			typed.Priority, _ = v.(string)
		case KeyDueDate:
			typed.DueDate, _ = v.(string)
		case KeyOwner:
			typed.Owner, _ = v.(string)
		case KeyURL:
			typed.URL, _ = v.(string)
		case KeyMimeType:
			typed.MimeType, _ = v.(string)
		case KeyConfidence:
			if f, ok := v.(float64); ok {
				typed.Confidence = f
			} else if i, ok := v.(int); ok {
				typed.Confidence = float64(i)
			}
		case KeyOccurrences:
			if i, ok := v.(int); ok {
				typed.Occurrences = i
			} else if f, ok := v.(float64); ok {
				typed.Occurrences = int(f)
			}
		default:
			// Preserve unknown fields
			typed.Extra[k] = v
		}
	}

	return typed
}

// ToMap converts typed EntityMetadata back to a raw map.
// Only non-zero fields are included. Extra fields are merged into the result.
func (e EntityMetadata) ToMap() map[string]any {
	m := make(map[string]any)

	if e.Status != "" {
		m[KeyStatus] = e.Status
	}
	if e.Priority != "" {
		m[KeyPriority] = e.Priority
	}
	if e.DueDate != "" {
		m[KeyDueDate] = e.DueDate
	}
	if e.Owner != "" {
		m[KeyOwner] = e.Owner
	}
	if e.URL != "" {
		m[KeyURL] = e.URL
	}
	if e.MimeType != "" {
		m[KeyMimeType] = e.MimeType
	}
	if e.Confidence != 0 {
		m[KeyConfidence] = e.Confidence
	}
	if e.Occurrences != 0 {
		m[KeyOccurrences] = e.Occurrences
	}
	for k, v := range e.Extra {
		m[k] = v
	}

	return m
}
