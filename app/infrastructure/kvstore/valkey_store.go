package kvstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
	"menlo.ai/learning-client/app/utils/functional"
)

// ValkeyStore is a durable store on Valkey.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// parseValkeyURL parses a Valkey URL and returns address, password, database, and error
func parseValkeyURL(valkeyURL string) (address, password string, database int, err error) {
	database = -1 // -1 means no database specified

	// Handle plain address without protocol
	if !strings.Contains(valkeyURL, "://") {
		return valkeyURL, "", -1, nil
	}

	u, err := url.Parse(valkeyURL)
	if err != nil {
		return "", "", -1, fmt.Errorf("invalid URL format: %w", err)
	}

	address = u.Host
	if address == "" {
		return "", "", -1, fmt.Errorf("no host specified in URL")
	}

	if u.User != nil {
		password, _ = u.User.Password()
	}

	if u.Path != "" && u.Path != "/" {
		dbStr := strings.TrimPrefix(u.Path, "/")
		if dbStr != "" {
			if db, parseErr := strconv.Atoi(dbStr); parseErr == nil {
				database = db
			}
		}
	}

	return address, password, database, nil
}

// NewValkeyStore connects to Valkey using the URL in opts.
func NewValkeyStore(opts Options) (*ValkeyStore, error) {
	valkeyURL := opts.URL
	if valkeyURL == "" {
		valkeyURL = "valkey://localhost:6379"
	}

	address, password, db, err := parseValkeyURL(valkeyURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	co := valkey.ClientOption{
		InitAddress: []string{address},
	}
	if password != "" {
		co.Password = password
	}
	if db != -1 {
		co.SelectDB = db
	}
	if opts.Password != "" {
		co.Password = opts.Password
	}
	if opts.DB >= 0 {
		co.SelectDB = opts.DB
	}

	client, err := valkey.NewClient(co)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: valkey ping: %v", ErrUnavailable, err)
	}

	return &ValkeyStore{client: client, prefix: opts.Prefix}, nil
}

func (v *ValkeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	result := v.client.Do(ctx, v.client.B().Get().Key(v.prefix+key).Build())
	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get value: %w", err)
	}
	val, err := result.ToString()
	if err != nil {
		return "", false, fmt.Errorf("failed to convert result to string: %w", err)
	}
	return val, true, nil
}

func (v *ValkeyStore) Set(ctx context.Context, key string, value string) error {
	if err := v.client.Do(ctx, v.client.B().Set().Key(v.prefix+key).Value(value).Build()).Error(); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}

func (v *ValkeyStore) Remove(ctx context.Context, key string) error {
	if err := v.client.Do(ctx, v.client.B().Unlink().Key(v.prefix+key).Build()).Error(); err != nil {
		return fmt.Errorf("failed to unlink key: %w", err)
	}
	return nil
}

// Keys uses KEYS on the namespace. Client stores hold a few hundred keys at most.
func (v *ValkeyStore) Keys(ctx context.Context) ([]string, error) {
	result := v.client.Do(ctx, v.client.B().Keys().Pattern(v.prefix+"*").Build())
	if err := result.Error(); err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}
	keys, err := result.AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse keys: %w", err)
	}
	return functional.Map(keys, func(k string) string {
		return strings.TrimPrefix(k, v.prefix)
	}), nil
}

func (v *ValkeyStore) Len(ctx context.Context) (int, error) {
	keys, err := v.Keys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (v *ValkeyStore) Close() error {
	v.client.Close()
	return nil
}

func (v *ValkeyStore) HealthCheck(ctx context.Context) error {
	return v.client.Do(ctx, v.client.B().Ping().Build()).Error()
}
