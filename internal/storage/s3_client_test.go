package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresRegionAndBucket(t *testing.T) {
	_, err := NewClient(context.Background(), S3Config{Region: "eu-west-1"})
	assert.Error(t, err)
	assert.False(t, S3Config{Bucket: "b"}.Enabled())
}

func TestClient_PresignGetUsesEndpoint(t *testing.T) {
	c, err := NewClient(context.Background(), S3Config{
		Region:    "us-east-1",
		Bucket:    "anim-exports",
		AccessKey: "AKIDEXAMPLE",
		SecretKey: "secret",
		Endpoint:  "http://localhost:9000",
	})
	require.NoError(t, err)

	u, err := c.PresignGet(context.Background(), "exports/a.tgios-anim")
	require.NoError(t, err)
	assert.Contains(t, u, "http://localhost:9000/anim-exports/exports/a.tgios-anim")
	assert.Contains(t, u, "X-Amz-Signature=")
}

func TestClient_FileURL(t *testing.T) {
	c := &Client{cfg: S3Config{PublicBase: "https://cdn.example.com"}}
	assert.Equal(t, "https://cdn.example.com/k", c.FileURL("k"))
	assert.Empty(t, (&Client{}).FileURL("k"))

	var nilClient *Client
	assert.Empty(t, nilClient.FileURL("k"))
	assert.Error(t, nilClient.PutObject(context.Background(), "k", "application/json", nil))
}
