package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"whatsapp-bot/models"
)

// OrderLookup resolves a phone number or order reference to recent orders.
// An empty result is not an error.
type OrderLookup interface {
	Lookup(ctx context.Context, phoneOrRef string) ([]models.OrderSummary, error)
}

// ShopifyClient queries the Shopify Admin GraphQL API. It satisfies
// OrderLookup.
type ShopifyClient struct {
	graphqlURL string
	apiToken   string
	httpClient *http.Client
}

// NewShopifyClient creates a client for the given store, e.g.
// "tacx-store.myshopify.com".
func NewShopifyClient(storeURL, apiToken string, timeout time.Duration) *ShopifyClient {
	return &ShopifyClient{
		graphqlURL: fmt.Sprintf("https://%s/admin/api/2024-04/graphql.json", storeURL),
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

const orderQueryTemplate = `{
  orders(first: 5, query: "%s", sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        name
        createdAt
        financialStatus
        fulfillmentStatus
        totalPriceSet {
          shopMoney {
            amount
            currencyCode
          }
        }
        lineItems(first: 5) {
          edges {
            node {
              title
              quantity
            }
          }
        }
      }
    }
  }
}`

// Lookup finds recent orders for a phone number in canonical international
// form, or for an explicit order reference (a "#"-prefixed or brand-prefixed
// code).
func (s *ShopifyClient) Lookup(ctx context.Context, phoneOrRef string) ([]models.OrderSummary, error) {
	filter := fmt.Sprintf("phone:%s", phoneOrRef)
	if !strings.HasPrefix(phoneOrRef, "+") {
		filter = fmt.Sprintf("name:%s", strings.TrimPrefix(phoneOrRef, "#"))
	}

	query := fmt.Sprintf(orderQueryTemplate, filter)
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.graphqlURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", s.apiToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("Shopify API error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("Shopify API error: %s", resp.Status)
	}

	var result struct {
		Data struct {
			Orders struct {
				Edges []struct {
					Node struct {
						Name              string `json:"name"`
						CreatedAt         string `json:"createdAt"`
						FinancialStatus   string `json:"financialStatus"`
						FulfillmentStatus string `json:"fulfillmentStatus"`
						TotalPriceSet     struct {
							ShopMoney struct {
								Amount       string `json:"amount"`
								CurrencyCode string `json:"currencyCode"`
							} `json:"shopMoney"`
						} `json:"totalPriceSet"`
						LineItems struct {
							Edges []struct {
								Node struct {
									Title    string `json:"title"`
									Quantity int    `json:"quantity"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"lineItems"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"orders"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode Shopify response: %w", err)
	}

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("Shopify query error: %s", result.Errors[0].Message)
	}

	orders := make([]models.OrderSummary, 0, len(result.Data.Orders.Edges))
	for _, edge := range result.Data.Orders.Edges {
		node := edge.Node
		order := models.OrderSummary{
			Name:              node.Name,
			CreatedAt:         node.CreatedAt,
			FinancialStatus:   node.FinancialStatus,
			FulfillmentStatus: node.FulfillmentStatus,
			TotalAmount:       node.TotalPriceSet.ShopMoney.Amount,
			TotalCurrency:     node.TotalPriceSet.ShopMoney.CurrencyCode,
		}
		for _, item := range node.LineItems.Edges {
			order.LineItems = append(order.LineItems, models.LineItem{
				Title:    item.Node.Title,
				Quantity: item.Node.Quantity,
			})
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// FormatOrderReply renders the most recent order as the customer-facing
// status message.
func FormatOrderReply(orders []models.OrderSummary) string {
	order := orders[0]

	var items strings.Builder
	for _, item := range order.LineItems {
		fmt.Fprintf(&items, "- %s (Qty: %d)\n", item.Title, item.Quantity)
	}

	return fmt.Sprintf(`🧾 *Latest Order Details:*
Order ID: %s
Date: %s
Status: %s / %s
Items:
%sTotal: %s %s`,
		order.Name,
		order.CreatedAt,
		order.FinancialStatus,
		order.FulfillmentStatus,
		items.String(),
		order.TotalAmount,
		order.TotalCurrency,
	)
}
