package llm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const cognitiveServicesScope = "https://cognitiveservices.azure.com/.default"

// TokenProvider supplies a bearer token for one outgoing request.
type TokenProvider func(ctx context.Context) (string, error)

// NewAzureTokenProvider builds a provider backed by the default Azure
// credential chain (managed identity, CLI login, env). Tokens are cached
// until shortly before expiry.
func NewAzureTokenProvider() (TokenProvider, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("create azure credential: %w", err)
	}

	var mu sync.Mutex
	var cached azcore.AccessToken

	return func(ctx context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()

		if cached.Token != "" && time.Until(cached.ExpiresOn) > 2*time.Minute {
			return cached.Token, nil
		}

		token, err := cred.GetToken(ctx, policy.TokenRequestOptions{
			Scopes: []string{cognitiveServicesScope},
		})
		if err != nil {
			return "", fmt.Errorf("acquire token: %w", err)
		}

		cached = token
		return cached.Token, nil
	}, nil
}
