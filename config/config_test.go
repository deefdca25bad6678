package config

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/recognarr/recognarr/config/mocks"
	"github.com/spf13/viper"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	t.Run("fail to read in config", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("expected testing error")
		cu.EXPECT().ConfigFileUsed().Times(1).Return("fake-config.yaml")
		cu.EXPECT().ReadInConfig().Times(1).Return(wantErr)
		c, err := New(cu)
		if err == nil {
			t.Errorf("TestNew() err = %v, want %v", err, wantErr)
		}

		wantConfig := Config{}
		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %v, want %v", c, wantConfig)
		}
	})

	t.Run("success with file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("./testing/config.yaml")
		c, err := New(cu)
		if err != nil {
			t.Errorf("TestNew() err = %v, want %v", err, nil)
		}

		wantConfig := Config{
			Cache: Cache{
				Capacity: 500,
				TTL:      12 * time.Hour,
			},
			AI: AI{
				Enabled:     true,
				Endpoint:    "https://ai.example.com/v1/recognize",
				APIKey:      "my-api-key",
				Threshold:   0.6,
				Timeout:     5 * time.Second,
				MaxRetries:  2,
				BaseBackoff: 250 * time.Millisecond,
			},
			Server: Server{
				Port: 9090,
			},
			Batch: Batch{
				Workers: 2,
			},
		}
		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %v, want %v", c, wantConfig)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := Config{
		Cache:  Cache{Capacity: 10_000, TTL: 24 * time.Hour},
		AI:     AI{Threshold: 0.5, Timeout: 10 * time.Second},
		Server: Server{Port: 8080},
		Batch:  Batch{Workers: 2},
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() err = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero capacity", func(c *Config) { c.Cache.Capacity = 0 }},
		{"threshold above one", func(c *Config) { c.AI.Threshold = 1.5 }},
		{"too many workers", func(c *Config) { c.Batch.Workers = 9 }},
		{"bad endpoint", func(c *Config) { c.AI.Endpoint = "not-a-url" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() err = nil, want error")
			}
		})
	}
}
