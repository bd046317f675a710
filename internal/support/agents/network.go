package agents

import (
	"context"
	"errors"
	"fmt"

	"github.com/telsupport/server/internal/store"
	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/internal/support/prompts"
	"github.com/telsupport/server/pkg/logx"
)

const (
	msgIdentifyYourself = "I'm sorry, but I couldn't identify your account. Please make sure you're logged in with a valid email address."
	msgExchangeFailed   = "I'm sorry, I couldn't diagnose the network issue at this time."
)

// NetworkAgent troubleshoots mobile connectivity issues. Unlike billing and
// plan it fails closed on identity: an unknown email gets an explicit
// rejection and no further processing.
type NetworkAgent struct {
	exchange  *Exchange
	store     *store.Store
	knowledge Retriever
	relevance *RelevanceFilter
}

func NewNetworkAgent(exchange *Exchange, st *store.Store, kn Retriever, rf *RelevanceFilter) *NetworkAgent {
	return &NetworkAgent{exchange: exchange, store: st, knowledge: kn, relevance: rf}
}

// Handle processes a network query through the bounded diagnostics/solution
// exchange, checking account status before any troubleshooting.
func (a *NetworkAgent) Handle(ctx context.Context, query, customerEmail string) string {
	if ok, rejection := a.relevance.Check(ctx, query); !ok {
		return rejection
	}

	if customerEmail == "" {
		return msgIdentifyYourself
	}

	var customerContext string
	profile, err := a.store.NetworkProfileByEmail(ctx, customerEmail)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Sprintf("I'm sorry, but the email '%s' is not registered in our system. Please contact customer service to verify your account details.", customerEmail)
	case err != nil:
		// Store trouble is not the caller's fault; troubleshoot generically.
		logx.Warn().Err(err).Msg("customer lookup failed; proceeding with generic troubleshooting")
		customerContext = "CUSTOMER INFORMATION UNAVAILABLE. Proceed with generic mobile network troubleshooting."
	default:
		customerContext = fmt.Sprintf(`CUSTOMER INFORMATION (CHECK THIS FIRST!):
- Customer Name: %s
- Account Status: %s <- **CRITICAL: Check this first!**
- Current Plan: %s`, profile.Name, profile.AccountStatus, profile.PlanName)
	}

	knowledgeContext := a.knowledge.Retrieve(ctx, model.CategoryNetwork, query)

	seed, err := prompts.RenderNetworkSeed(ctx, query, customerContext, knowledgeContext)
	if err != nil {
		return errorText(model.CategoryNetwork, err)
	}

	response, err := a.exchange.Run(ctx, seed)
	if err != nil {
		return errorText(model.CategoryNetwork, err)
	}
	if response == "" {
		return msgExchangeFailed
	}
	return response
}
