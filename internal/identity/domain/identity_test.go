package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sundacoder/ZedID/internal/errors"
)

func TestNewIdentity_Derivation(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Success_Workload", func(t *testing.T) {
		identity := NewIdentity(
			CreateIdentityInput{Kind: KindWorkload, Name: "checkout", Namespace: "production"},
			"example.org",
			now,
		)

		require.NotNil(t, identity.SpiffeID)
		assert.Equal(t, "spiffe://example.org/ns/production/sa/checkout", *identity.SpiffeID)
		assert.Equal(t, TrustHigh, identity.TrustLevel)
		assert.Nil(t, identity.Email)
		require.NotNil(t, identity.SvidExpiry)
		assert.Equal(t, now.Add(time.Hour), *identity.SvidExpiry)
		assert.True(t, identity.IsActive)
		assert.NotNil(t, identity.Labels)
		assert.Equal(t, now, identity.CreatedAt)
		assert.Equal(t, now, identity.LastSeen)
	})

	t.Run("Success_AIAgent", func(t *testing.T) {
		identity := NewIdentity(
			CreateIdentityInput{Kind: KindAIAgent, Name: "planner", Namespace: "ai-platform"},
			"example.org",
			now,
		)

		require.NotNil(t, identity.SpiffeID)
		assert.Equal(t, "spiffe://example.org/ns/ai-platform/agent/planner", *identity.SpiffeID)
		assert.Equal(t, TrustMedium, identity.TrustLevel)
		require.NotNil(t, identity.SvidExpiry)
		assert.Equal(t, now.Add(4*time.Hour), *identity.SvidExpiry)
	})

	t.Run("Success_ServiceAccountUsesWorkloadDerivation", func(t *testing.T) {
		identity := NewIdentity(
			CreateIdentityInput{Kind: KindServiceAccount, Name: "ci", Namespace: "build"},
			"example.org",
			now,
		)

		require.NotNil(t, identity.SpiffeID)
		assert.Equal(t, "spiffe://example.org/ns/build/sa/ci", *identity.SpiffeID)
		assert.Equal(t, KindServiceAccount, identity.Kind)
		assert.Equal(t, TrustHigh, identity.TrustLevel)
	})

	t.Run("Success_HumanWithEmail", func(t *testing.T) {
		email := "carol@corp.example"
		identity := NewIdentity(
			CreateIdentityInput{Kind: KindHuman, Name: "carol", Namespace: "platform", Email: &email},
			"example.org",
			now,
		)

		assert.Nil(t, identity.SpiffeID)
		assert.Nil(t, identity.SvidExpiry)
		require.NotNil(t, identity.Email)
		assert.Equal(t, email, *identity.Email)
		assert.Equal(t, TrustMedium, identity.TrustLevel)
	})

	t.Run("Success_HumanEmailSynthesized", func(t *testing.T) {
		identity := NewIdentity(
			CreateIdentityInput{Kind: KindHuman, Name: "dave", Namespace: "platform"},
			"example.org",
			now,
		)

		require.NotNil(t, identity.Email)
		assert.Equal(t, "dave@example.org", *identity.Email)
	})
}

func TestIdentity_SvidTTL(t *testing.T) {
	now := time.Now().UTC()
	identity := NewIdentity(CreateIdentityInput{Kind: KindWorkload, Name: "a", Namespace: "b"}, "td", now)

	assert.True(t, identity.IsSvidValid(now))
	assert.Equal(t, int64(3600), identity.SvidTTLSeconds(now))
	assert.False(t, identity.IsSvidValid(now.Add(2*time.Hour)))
	assert.Equal(t, int64(0), identity.SvidTTLSeconds(now.Add(2*time.Hour)))

	human := NewIdentity(CreateIdentityInput{Kind: KindHuman, Name: "h", Namespace: "b"}, "td", now)
	assert.False(t, human.IsSvidValid(now))
}

func TestParseSpiffeID(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    SpiffeID
		wantErr bool
	}{
		{
			name: "Success_Workload",
			uri:  "spiffe://example.org/ns/production/sa/checkout",
			want: SpiffeID{TrustDomain: "example.org", Path: "ns/production/sa/checkout"},
		},
		{name: "Error_MissingScheme", uri: "https://example.org/ns/a", wantErr: true},
		{name: "Error_NoPath", uri: "spiffe://example.org", wantErr: true},
		{name: "Error_EmptyPath", uri: "spiffe://example.org/", wantErr: true},
		{name: "Error_EmptyTrustDomain", uri: "spiffe:///ns/a", wantErr: true},
		{name: "Error_Empty", uri: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpiffeID(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSpiffeID)
				assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.uri, got.String())
			assert.True(t, got.MemberOf("example.org"))
			assert.False(t, got.MemberOf("other.org"))
		})
	}
}

func TestTrustLevel(t *testing.T) {
	t.Run("Success_Ordering", func(t *testing.T) {
		assert.Less(t, TrustUntrusted, TrustLow)
		assert.Less(t, TrustLow, TrustMedium)
		assert.Less(t, TrustMedium, TrustHigh)
		assert.Less(t, TrustHigh, TrustCritical)
		assert.Equal(t, uint8(4), uint8(TrustCritical))
	})

	t.Run("Success_JSONRoundTrip", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Level TrustLevel `json:"level"`
		}{Level: TrustHigh})
		require.NoError(t, err)
		assert.JSONEq(t, `{"level":"high"}`, string(data))

		var decoded struct {
			Level TrustLevel `json:"level"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"level":"Critical"}`), &decoded))
		assert.Equal(t, TrustCritical, decoded.Level)
	})

	t.Run("Error_UnknownName", func(t *testing.T) {
		_, err := ParseTrustLevel("ultra")
		assert.Error(t, err)
	})

	t.Run("Error_OutOfRange", func(t *testing.T) {
		assert.Error(t, TrustLevel(9).Validate())
		_, err := TrustLevel(9).MarshalText()
		assert.Error(t, err)
	})
}

func TestKind_Validate(t *testing.T) {
	for _, k := range []Kind{KindHuman, KindWorkload, KindAIAgent, KindServiceAccount} {
		assert.NoError(t, k.Validate(), k)
	}
	assert.Error(t, Kind("robot").Validate())
}

func TestCredential_IsValid(t *testing.T) {
	issued := time.Now().UTC()
	cred := &Credential{IssuedAt: issued, ExpiresAt: issued.Add(time.Hour)}

	assert.True(t, cred.IsValid(issued))
	assert.Equal(t, int64(3600), cred.TTLSeconds(issued))
	assert.False(t, cred.IsValid(cred.ExpiresAt))
	assert.Equal(t, int64(0), cred.TTLSeconds(cred.ExpiresAt.Add(time.Second)))
}

func TestDemoIdentities(t *testing.T) {
	now := time.Now().UTC()
	identities := DemoIdentities("example.org", now)

	require.Len(t, identities, 9)
	assert.Equal(t, "checkout-service", identities[0].Name)
	require.NotNil(t, identities[0].SpiffeID)
	assert.Equal(t, "spiffe://example.org/ns/production/sa/checkout-service", *identities[0].SpiffeID)

	admin := identities[len(identities)-1]
	assert.Equal(t, "admin", admin.Name)
	assert.Equal(t, "system", admin.Namespace)
	assert.Equal(t, TrustCritical, admin.TrustLevel)
	require.NotNil(t, admin.Email)
	assert.Equal(t, "admin@example.org", *admin.Email)

	for _, identity := range identities {
		if identity.SpiffeID == nil {
			continue
		}
		id, err := ParseSpiffeID(*identity.SpiffeID)
		require.NoError(t, err)
		assert.True(t, id.MemberOf("example.org"))
	}
}
