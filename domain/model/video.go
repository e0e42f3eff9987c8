package model

import (
	"bytes"
	"encoding/json"
	"math"
)

// Video is a catalog API video. Category, Duration and the owner id are
// optional on the wire. A decoded Video keeps the record it came from in Raw
// and re-encodes to it, so fields without a typed counterpart survive.
type Video struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	YoutubeVideoID string  `json:"youtubeVideoId,omitempty"`
	Category       *string `json:"category,omitempty"`
	// Duration in seconds; the catalog API may send fractional values.
	Duration  *float64 `json:"duration,omitempty"`
	UserID    *int     `json:"userId,omitempty"`
	OwnerID   *int     `json:"user_id,omitempty"`
	CreatedAt *string  `json:"createdAt,omitempty"`
	UpdatedAt *string  `json:"updatedAt,omitempty"`

	Raw json.RawMessage `json:"-"`
}

type videoFields Video

// UnmarshalJSON decodes each known field on its own. A field with an
// unexpected type is left absent instead of failing the record. JSON null
// leaves v untouched.
func (v *Video) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return nil
	}

	decoded := Video{Raw: append(json.RawMessage(nil), data...)}
	if id := wholeNumber(fields["id"]); id != nil {
		decoded.ID = *id
	}
	if s := optionalString(fields["title"]); s != nil {
		decoded.Title = *s
	}
	if s := optionalString(fields["description"]); s != nil {
		decoded.Description = *s
	}
	if s := optionalString(fields["youtubeVideoId"]); s != nil {
		decoded.YoutubeVideoID = *s
	}
	decoded.Category = optionalString(fields["category"])
	decoded.Duration = optionalNumber(fields["duration"])
	decoded.UserID = wholeNumber(fields["userId"])
	decoded.OwnerID = wholeNumber(fields["user_id"])
	decoded.CreatedAt = optionalString(fields["createdAt"])
	decoded.UpdatedAt = optionalString(fields["updatedAt"])

	*v = decoded
	return nil
}

// MarshalJSON emits the original record when there is one.
func (v Video) MarshalJSON() ([]byte, error) {
	if len(v.Raw) > 0 {
		return v.Raw, nil
	}
	return json.Marshal(videoFields(v))
}

// HasCategory reports whether the video carries a non-empty category.
func (v Video) HasCategory() bool {
	return v.Category != nil && *v.Category != ""
}

// DurationSeconds returns the duration, treating a missing value as 0.
func (v Video) DurationSeconds() float64 {
	if v.Duration == nil {
		return 0
	}
	return *v.Duration
}

// OwnedBy reports whether either owner id field (userId or user_id) equals userID.
func (v Video) OwnedBy(userID int) bool {
	if v.UserID != nil && *v.UserID == userID {
		return true
	}
	return v.OwnerID != nil && *v.OwnerID == userID
}

func optionalString(raw json.RawMessage) *string {
	var s *string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return nil
	}
	return s
}

func optionalNumber(raw json.RawMessage) *float64 {
	var f *float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil {
		return nil
	}
	return f
}

func wholeNumber(raw json.RawMessage) *int {
	f := optionalNumber(raw)
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil
	}
	i := int(*f)
	return &i
}

// IsJSONObject reports whether raw starts a JSON object.
func IsJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
