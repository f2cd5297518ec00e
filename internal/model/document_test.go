package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_ApplyUpdate(t *testing.T) {
	d := Document{
		Title: "Q3 OKR", Priority: PriorityLow, Status: StatusPrivate, Link: "https://drive/doc",
	}

	d.ApplyUpdate("", PriorityHigh, "", "")

	assert.Equal(t, "Q3 OKR", d.Title)
	assert.Equal(t, PriorityHigh, d.Priority)
	assert.Equal(t, StatusPrivate, d.Status)
	assert.Equal(t, "https://drive/doc", d.Link)

	d.ApplyUpdate("Q4 OKR", "", StatusShared, "https://drive/new")

	assert.Equal(t, "Q4 OKR", d.Title)
	assert.Equal(t, PriorityHigh, d.Priority)
	assert.Equal(t, StatusShared, d.Status)
	assert.Equal(t, "https://drive/new", d.Link)
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityLow))
	assert.True(t, ValidPriority(PriorityMedium))
	assert.True(t, ValidPriority(PriorityHigh))
	assert.False(t, ValidPriority("urgent"))
	assert.False(t, ValidPriority(""))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPrivate))
	assert.True(t, ValidStatus(StatusShared))
	assert.False(t, ValidStatus("Public"))
	assert.False(t, ValidStatus(""))
}

func TestNewInstancePermission(t *testing.T) {
	rec := NewInstancePermission("doc-1")

	assert.Equal(t, "doc-1", rec.InstanceID)
	assert.True(t, rec.Permissions.Read)
	assert.True(t, rec.Permissions.Write)
}
