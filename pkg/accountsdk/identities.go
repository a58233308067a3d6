package accountsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// identityDecodeWorkers bounds concurrent record decoding per page.
const identityDecodeWorkers = 8

// decodeIdentityPage decodes each raw record concurrently, keeping page
// order. The first bad record fails the page.
func decodeIdentityPage(ctx context.Context, raw rawIdentityPage) (*IdentityPage, error) {
	out := make([]Identity, len(raw.Identities))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(identityDecodeWorkers)
	for i, rec := range raw.Identities {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := decodeIdentity(rec)
			if err != nil {
				return fmt.Errorf("identity %d: %w", i, err)
			}
			out[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to decode identities: %w", err)
	}

	return &IdentityPage{Identities: out, Next: raw.Next}, nil
}

func decodeIdentity(rec json.RawMessage) (Identity, error) {
	var id Identity
	if err := json.Unmarshal(rec, &id); err != nil {
		return Identity{}, err
	}
	if id.ToznyID == "" || id.Username == "" {
		return Identity{}, fmt.Errorf("record is missing tozny_id or name")
	}
	id.Username = strings.ToLower(id.Username)
	return id, nil
}
