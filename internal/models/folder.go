package models

import "time"

// Attachment is one uploaded file for a document. The list on a document is
// append-only; the bytes live in the blob store under Filename.
type Attachment struct {
	Filename       string           `bson:"filename" json:"filename"`
	Status         AttachmentStatus `bson:"status" json:"status"`
	IsActive       bool             `bson:"isActive" json:"isActive"`
	ExpeditionDate *time.Time       `bson:"expeditionDate,omitempty" json:"expeditionDate,omitempty"`
	CreatedAt      time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// Document tracks one requisite inside a user's folder. Name equals the
// originating requisite's name and is the join key back to the catalog.
type Document struct {
	Name             string       `bson:"name" json:"name"`
	State            State        `bson:"state" json:"state"`
	IsActive         bool         `bson:"isActive" json:"isActive"`
	Format           string       `bson:"format,omitempty" json:"format,omitempty"`
	Description      string       `bson:"description,omitempty" json:"description,omitempty"`
	Attachments      []Attachment `bson:"attachments" json:"attachments"`
	HasExpiration    bool         `bson:"hasExpiration" json:"hasExpiration"`
	ExpirationDate   *time.Time   `bson:"expirationDate,omitempty" json:"expirationDate,omitempty"`
	RejectionMessage string       `bson:"rejectionMessage,omitempty" json:"rejectionMessage,omitempty"`
	// CurrentAttachment is the filename of the attachment under review,
	// maintained on every attachment write.
	CurrentAttachment string    `bson:"currentAttachment,omitempty" json:"currentAttachment,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Attachment returns the attachment with the given filename, or nil.
func (d *Document) Attachment(filename string) *Attachment {
	for i := range d.Attachments {
		if d.Attachments[i].Filename == filename {
			return &d.Attachments[i]
		}
	}
	return nil
}

// Current returns the attachment the CurrentAttachment pointer names. When
// the pointer is unset (documents written before it existed) it falls back
// to the most recently updated attachment.
func (d *Document) Current() *Attachment {
	if d.CurrentAttachment != "" {
		if a := d.Attachment(d.CurrentAttachment); a != nil {
			return a
		}
	}
	var latest *Attachment
	for i := range d.Attachments {
		if latest == nil || d.Attachments[i].UpdatedAt.After(latest.UpdatedAt) {
			latest = &d.Attachments[i]
		}
	}
	return latest
}

// Folder is the per-user document folder, embedded in the user aggregate.
type Folder struct {
	Name        string     `bson:"name" json:"name"`
	State       State      `bson:"state" json:"state"`
	IsActive    bool       `bson:"isActive" json:"isActive"`
	ProfileName string     `bson:"profileName,omitempty" json:"profileName,omitempty"`
	HiringType  string     `bson:"hiringType,omitempty" json:"hiringType,omitempty"`
	Services    []string   `bson:"services,omitempty" json:"services,omitempty"`
	Documents   []Document `bson:"documents" json:"documents"`
}

// Scaffold fills the folder with one pending document per unique requisite.
// It runs exactly once, at user creation; re-running it would duplicate
// documents, so callers must never scaffold an existing folder again.
func (f *Folder) Scaffold(requisites []Requisite) {
	now := time.Now().UTC()
	seen := make(map[string]struct{}, len(requisites))
	docs := make([]Document, 0, len(requisites))
	for _, req := range requisites {
		if _, dup := seen[req.ID]; dup {
			continue
		}
		seen[req.ID] = struct{}{}
		docs = append(docs, Document{
			Name:          req.Name,
			State:         StatePending,
			IsActive:      true,
			Format:        req.Format,
			Description:   req.Description,
			Attachments:   []Attachment{},
			HasExpiration: false,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	f.Documents = docs
	f.State = StatePending
	f.IsActive = true
}

// Document returns the document with the given name, or nil.
func (f *Folder) Document(name string) *Document {
	for i := range f.Documents {
		if f.Documents[i].Name == name {
			return &f.Documents[i]
		}
	}
	return nil
}
