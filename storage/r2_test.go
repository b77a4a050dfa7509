// File: /storage/r2_test.go
package storage

import (
	"net/url"
	"testing"
)

func TestR2UploaderConfigValidate(t *testing.T) {
	valid := R2UploaderConfig{
		AccountID:       "acct",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "media",
		PublicBaseURL:   "https://cdn.example.com",
	}
	if err := valid.validate(); err != nil {
		t.Fatalf("validate() on complete config = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*R2UploaderConfig)
	}{
		{"missing account", func(c *R2UploaderConfig) { c.AccountID = "" }},
		{"missing access key", func(c *R2UploaderConfig) { c.AccessKeyID = "" }},
		{"missing secret", func(c *R2UploaderConfig) { c.SecretAccessKey = "" }},
		{"missing bucket", func(c *R2UploaderConfig) { c.BucketName = "" }},
		{"missing public URL", func(c *R2UploaderConfig) { c.PublicBaseURL = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.validate(); err == nil {
				t.Error("validate() = nil, want error")
			}
		})
	}
}

func TestR2UploaderPublicURL(t *testing.T) {
	base, err := url.Parse("https://cdn.example.com/media/")
	if err != nil {
		t.Fatal(err)
	}
	u := &r2Uploader{baseURL: base}

	tests := []struct {
		key  string
		want string
	}{
		{"covers/abc.png", "https://cdn.example.com/media/covers/abc.png"},
		{"/covers/abc.png", "https://cdn.example.com/media/covers/abc.png"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := u.GetPublicURL(tt.key); got != tt.want {
			t.Errorf("GetPublicURL(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
