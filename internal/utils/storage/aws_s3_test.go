package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicLinkRoundTrip(t *testing.T) {
	s := &awsS3{bucket: "canteen-assets", region: "ap-south-1"}

	link := s.GetPublicLinkKey("menu-items/menu-item-1.png")
	assert.Equal(t, "https://canteen-assets.s3.ap-south-1.amazonaws.com/menu-items/menu-item-1.png", link)
	assert.Equal(t, "menu-items/menu-item-1.png", s.GetObjectKeyFromLink(link))
	assert.Equal(t, "", s.GetObjectKeyFromLink("https://example.com/other.png"))
}

func TestUnconfiguredStorageRefusesWrites(t *testing.T) {
	s := &awsS3{}
	assert.ErrorIs(t, s.DeleteFile("x"), ErrStorageUnavailable)
}
