package domain

import "time"

// DemoIdentities returns the identities loaded at startup when demo data is enabled.
func DemoIdentities(trustDomain string, now time.Time) []*Identity {
	workload := func(name, namespace string) *Identity {
		return NewIdentity(CreateIdentityInput{Kind: KindWorkload, Name: name, Namespace: namespace}, trustDomain, now)
	}
	agent := func(name, namespace string) *Identity {
		return NewIdentity(CreateIdentityInput{Kind: KindAIAgent, Name: name, Namespace: namespace}, trustDomain, now)
	}
	human := func(name, namespace string) *Identity {
		email := name + "@" + trustDomain
		return NewIdentity(
			CreateIdentityInput{Kind: KindHuman, Name: name, Namespace: namespace, Email: &email},
			trustDomain,
			now,
		)
	}

	admin := human("admin", "system")
	admin.TrustLevel = TrustCritical

	return []*Identity{
		workload("checkout-service", "production"),
		workload("payment-service", "production"),
		workload("inventory-service", "production"),
		workload("auth-service", "platform"),
		agent("tars-policy-agent", "ai-platform"),
		agent("anomaly-detector", "ai-platform"),
		human("alice.chen", "platform"),
		human("bob.kumar", "production"),
		admin,
	}
}
