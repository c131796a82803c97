package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"calldash/internal/config"
)

func TestNewMinIO_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantErr string
	}{
		{
			name:    "missing endpoint",
			cfg:     config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"},
			wantErr: "endpoint is required",
		},
		{
			name:    "missing credentials",
			cfg:     config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", Bucket: "b"},
			wantErr: "credentials are required",
		},
		{
			name:    "missing bucket",
			cfg:     config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"},
			wantErr: "bucket is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := NewMinIO(context.Background(), tt.cfg, zerolog.Nop())
			assert.Nil(t, st)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTranslate(t *testing.T) {
	missing := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	assert.ErrorIs(t, translate("exports/a.csv", missing), ErrObjectNotFound)

	other := translate("exports/a.csv", errors.New("connection reset"))
	assert.NotErrorIs(t, other, ErrObjectNotFound)
	assert.ErrorContains(t, other, "get exports/a.csv")
}
