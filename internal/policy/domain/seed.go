package domain

import (
	"strings"
	"time"
)

// SeedCreator is the creator recorded on built-in policies.
const SeedCreator = "zedid-system"

const checkoutReadsInventoryRego = `package zedid.production.inventory

import future.keywords.if
import future.keywords.in

default allow := false

# Allow checkout service to read inventory
allow if {
    input.subject == "spiffe://{{trust_domain}}/ns/production/sa/checkout"
    input.action in {"GET", "LIST"}
    input.resource == "inventory-service"
    input.trust_level >= 3
}

# Deny all write operations from checkout
deny if {
    input.subject == "spiffe://{{trust_domain}}/ns/production/sa/checkout"
    input.action in {"POST", "PUT", "DELETE", "PATCH"}
}
`

const agentRoutingRego = `package zedid.ai.tars_routing

import future.keywords.if
import future.keywords.in

default allow := false

# AI agents with sufficient trust may route through TARS
allow if {
    startswith(input.subject, "spiffe://{{trust_domain}}/ns/ai-platform/agent/")
    input.action == "route"
    input.resource == "tars-router"
    input.trust_level >= 2
    not budget_exceeded
}

# Budget enforcement: max 10000 tokens per day per agent
budget_exceeded if {
    input.context.daily_tokens_used > 10000
}

# High-risk model access requires higher trust
deny if {
    input.context.target_model in {"gpt-4o", "claude-3-opus"}
    input.trust_level < 3
}
`

const adminFullAccessRego = `package zedid.system.admin

import future.keywords.if
import future.keywords.in

default allow := false

# Platform admins have full access
allow if {
    "platform-admin" in input.roles
    input.trust_level >= 4
    valid_session
}

valid_session if {
    input.context.mfa_verified == true
    input.context.session_age_minutes < 60
}
`

// DemoPolicies returns the built-in Active policies for trustDomain, in store order.
func DemoPolicies(trustDomain string, now time.Time) []*Policy {
	render := func(tmpl string) string {
		return strings.ReplaceAll(tmpl, "{{trust_domain}}", trustDomain)
	}

	checkout := NewDraftPolicy(CreatePolicyInput{
		Name:        "checkout-reads-inventory",
		Description: "Allow checkout service to read inventory data",
		Kind:        KindRego,
		AccessModel: AccessModelZeroTrust,
		Content:     render(checkoutReadsInventoryRego),
		Explanation: "The checkout service is permitted to read inventory data to display product " +
			"availability. Write operations are explicitly denied.",
		Namespace: "production",
		Subjects:  []string{"spiffe://" + trustDomain + "/ns/production/sa/checkout"},
		Resources: []string{"inventory-service"},
		Actions:   []string{"GET", "LIST"},
		Tags:      []string{"production", "e-commerce"},
	}, SeedCreator, now)

	routing := NewDraftPolicy(CreatePolicyInput{
		Name:        "tars-agent-llm-routing",
		Description: "TARS AI agent routing policy — controls which LLMs agents can access",
		Kind:        KindRego,
		AccessModel: AccessModelABAC,
		Content:     render(agentRoutingRego),
		Explanation: "AI agents with trust_level >= 2 may route requests through TARS. Budget limits " +
			"are enforced per agent per day.",
		Namespace: "ai-platform",
		Subjects:  []string{"spiffe://" + trustDomain + "/ns/ai-platform/agent/*"},
		Resources: []string{"tars-router"},
		Actions:   []string{"route"},
		Tags:      []string{"ai-governance", "tars"},
	}, SeedCreator, now)
	routingModel := "gemini-2.0-flash"
	routing.AIGenerated = true
	routing.AIModelUsed = &routingModel

	admin := NewDraftPolicy(CreatePolicyInput{
		Name:        "admin-full-access",
		Description: "Platform administrators have full access to ZedID management APIs",
		Kind:        KindRego,
		AccessModel: AccessModelRBAC,
		Content:     adminFullAccessRego,
		Explanation: "Platform administrators can perform all operations on ZedID APIs. This policy " +
			"requires trust_level=4 (Critical).",
		Namespace: SystemNamespace,
		Subjects:  []string{"role:platform-admin"},
		Resources: []string{"zedid-api/*"},
		Actions:   []string{"*"},
		Tags:      []string{"admin", "privileged"},
	}, SeedCreator, now)

	policies := []*Policy{checkout, routing, admin}
	for _, p := range policies {
		p.Status = StatusActive
		p.ValidationPassed = true
	}
	return policies
}
