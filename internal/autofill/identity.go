package autofill

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrival/quickvault/internal/logging"
	"github.com/dmitrival/quickvault/internal/models"
)

// Identity is one row of the platform's credential-identity index: enough
// for the OS to offer an entry at a login form without seeing its secret.
type Identity struct {
	ServiceID string
	Username  string
	RecordID  uuid.UUID
}

// IdentitySink receives the full replacement index. Implemented by the
// platform autofill integration.
type IdentitySink interface {
	ReplaceIdentities(ctx context.Context, identities []Identity) error
}

// Publisher pushes the identity index whenever the unlocked entry set
// changes. The push is one-way: failures are logged, never propagated back
// into the unlock flow.
type Publisher struct {
	sink IdentitySink
	log  logging.Logger
}

func NewPublisher(sink IdentitySink, log logging.Logger) *Publisher {
	if log == nil {
		log = logging.Discard()
	}
	return &Publisher{sink: sink, log: log}
}

// Publish flattens entries into identities and replaces the platform index.
// Entries without a URL have no service to be offered at and are skipped.
func (p *Publisher) Publish(ctx context.Context, entries []models.CredentialEntry) {
	identities := make([]Identity, 0, len(entries))
	for _, e := range entries {
		if e.URL == "" {
			continue
		}
		identities = append(identities, Identity{
			ServiceID: e.URL,
			Username:  e.Username,
			RecordID:  recordID(e),
		})
	}

	if err := p.sink.ReplaceIdentities(ctx, identities); err != nil {
		p.log.Warn(ctx, "credential identity push failed", "count", len(identities), "error", err)
	}
}

// recordID derives a stable opaque identifier from the entry ID, so the
// index row for an entry survives republishing unchanged.
func recordID(e models.CredentialEntry) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(e.ID))
}
