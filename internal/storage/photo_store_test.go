package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhotoKey(t *testing.T) {
	s := &PhotoStore{
		publicBaseURL: "http://localhost:9000/uploads",
		now: func() time.Time {
			return time.Date(2024, 3, 9, 14, 30, 5, 0, time.UTC)
		},
	}

	key := s.photoKey("avatar.png")
	assert.Equal(t, "profile_pic/20240309143005 - avatar.png", key)
}
