package guestbook_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kellendonk/webv2/internal/guestbook"
)

type fakeSignatures struct {
	addedSubject string
	addedImage   guestbook.Image
	listed       string
}

func (f *fakeSignatures) Add(_ context.Context, subject string, image guestbook.Image) (*guestbook.Signature, error) {
	f.addedSubject, f.addedImage = subject, image
	return &guestbook.Signature{ID: "sig-1", Subject: subject, Image: image}, nil
}

func (f *fakeSignatures) List(_ context.Context, subject string) ([]guestbook.Signature, error) {
	f.listed = subject
	return []guestbook.Signature{{ID: "sig-1", Subject: subject}}, nil
}

func decodeEvent(t *testing.T, raw string) guestbook.ResolverEvent {
	t.Helper()
	var event guestbook.ResolverEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &event))
	return event
}

func TestHandler_GetSignatures(t *testing.T) {
	fake := &fakeSignatures{}
	h := guestbook.NewHandler(fake, zaptest.NewLogger(t))

	out, err := h.Handle(context.Background(), decodeEvent(t, `{
		"arguments": {"subject": "josh"},
		"info": {"parentTypeName": "Query", "fieldName": "getGuestBookSignatures"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "josh", fake.listed)
	assert.Equal(t, []guestbook.Signature{{ID: "sig-1", Subject: "josh"}}, out)
}

func TestHandler_AddSignature(t *testing.T) {
	fake := &fakeSignatures{}
	h := guestbook.NewHandler(fake, zaptest.NewLogger(t))

	out, err := h.Handle(context.Background(), decodeEvent(t, `{
		"arguments": {
			"subject": "josh",
			"image": {
				"width": 400,
				"height": 200,
				"lines": [{"points": [{"x": 1, "y": 2}], "brushColor": "#444", "brushRadius": 2}]
			}
		},
		"info": {"parentTypeName": "Mutation", "fieldName": "addGuestBookSignature"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "josh", fake.addedSubject)
	assert.Equal(t, 400, fake.addedImage.Width)
	require.Len(t, fake.addedImage.Lines, 1)
	assert.Equal(t, guestbook.Point{X: 1, Y: 2}, fake.addedImage.Lines[0].Points[0])

	sig, ok := out.(*guestbook.Signature)
	require.True(t, ok)
	assert.Equal(t, "sig-1", sig.ID)
}

func TestHandler_UnknownField(t *testing.T) {
	h := guestbook.NewHandler(&fakeSignatures{}, zaptest.NewLogger(t))

	_, err := h.Handle(context.Background(), decodeEvent(t, `{
		"info": {"parentTypeName": "Query", "fieldName": "getInteractions"}
	}`))

	assert.ErrorIs(t, err, guestbook.ErrUnknownField)
}

func TestHandler_MalformedArguments(t *testing.T) {
	h := guestbook.NewHandler(&fakeSignatures{}, zaptest.NewLogger(t))

	_, err := h.Handle(context.Background(), decodeEvent(t, `{
		"arguments": {"subject": 42},
		"info": {"parentTypeName": "Query", "fieldName": "getGuestBookSignatures"}
	}`))

	assert.Error(t, err)
}
