package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIDCtxKey_String(t *testing.T) {
	assert.Equal(t, "userID", UserIDCtxKey.String())
	assert.Equal(t, "traceID", contextKey("traceID").String())
}

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID int64
		wantOK bool
	}{
		{
			name:   "authenticated caller",
			ctx:    context.WithValue(context.Background(), UserIDCtxKey, int64(42)),
			wantID: 42,
			wantOK: true,
		},
		{
			name: "no caller",
			ctx:  context.Background(),
		},
		{
			name: "caller stored as int",
			ctx:  context.WithValue(context.Background(), UserIDCtxKey, 42),
		},
		{
			name: "caller stored as token string",
			ctx:  context.WithValue(context.Background(), UserIDCtxKey, "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"),
		},
		{
			name: "plain string key is not the typed key",
			ctx:  context.WithValue(context.Background(), "userID", int64(7)), //nolint:staticcheck
		},
		{
			name: "other typed key",
			ctx:  context.WithValue(context.Background(), contextKey("projectID"), int64(99)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GetUserIDFromContext(tt.ctx)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestGetUserIDFromContext_Overwritten(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, int64(1))
	ctx = context.WithValue(ctx, UserIDCtxKey, int64(2))

	id, ok := GetUserIDFromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
}
