package translate

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Backend != "google" {
		t.Errorf("Expected backend 'google', got '%s'", config.Backend)
	}

	if config.Source != "en" {
		t.Errorf("Expected source 'en', got '%s'", config.Source)
	}

	if config.Target != "zh-CN" {
		t.Errorf("Expected target 'zh-CN', got '%s'", config.Target)
	}

	if config.Fallback != "zh" {
		t.Errorf("Expected fallback 'zh', got '%s'", config.Fallback)
	}
}

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "openai backend without key",
			config: &Config{
				Backend: "openai",
			},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name: "gemini backend without key",
			config: &Config{
				Backend: "gemini",
			},
			wantErr: true,
			errMsg:  "Gemini API key is required",
		},
		{
			name: "unknown backend",
			config: &Config{
				Backend: "unknown",
			},
			wantErr: true,
			errMsg:  "unknown translation backend: unknown",
		},
		{
			name: "google backend",
			config: &Config{
				Backend: "google",
			},
			wantErr: false,
		},
		{
			name:    "nil config uses google default",
			config:  nil,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBackend(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewBackend() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil && err.Error() != tt.errMsg {
				t.Errorf("NewBackend() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestLanguageName(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"en", "English"},
		{"zh", "Simplified Chinese"},
		{"zh-CN", "Simplified Chinese"},
		{"zh-TW", "Traditional Chinese"},
		{"ja", "Japanese"},
		{"xx", "xx"},
	}

	for _, tt := range tests {
		if got := languageName(tt.tag); got != tt.want {
			t.Errorf("languageName(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
