// Package server declares the tool catalog and binds the tool registry to an
// MCP stdio server.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pumpline/pumpline/internal/moralis"
	"github.com/pumpline/pumpline/internal/tools"
	"github.com/pumpline/pumpline/internal/trading"
	"github.com/pumpline/pumpline/internal/twitter"
)

// RegisterTrading registers the six trading tools. The write tools are always
// present; without a signing key they fail fast at invocation time.
func RegisterTrading(reg *tools.Registry, svc *trading.Service) error {
	specs := []struct {
		spec    tools.Spec
		handler tools.Handler
	}{
		{
			spec: tools.Spec{
				Name:        "search_tokens",
				Description: "Search pump.fun tokens by name or symbol. Returns address, name, symbol and market cap for each match.",
				Params: map[string]tools.ParamSpec{
					"query": {Type: tools.TypeString, Required: true, Description: "Search term (token name or symbol)"},
				},
				Hints: tools.Hints{ReadOnly: true, Idempotent: true, OpenWorld: true},
			},
			handler: func(ctx context.Context, args map[string]any) (string, error) {
				out, err := svc.SearchTokens(ctx, args["query"].(string))
				if err != nil {
					return "", err
				}
				return jsonText(out)
			},
		},
		{
			spec:    stageSpec("get_graduated_tokens", "List pump.fun tokens that have graduated from the bonding curve to market liquidity, newest first."),
			handler: stageHandler(svc, moralis.StageGraduated),
		},
		{
			spec:    stageSpec("get_bonding_tokens", "List pump.fun tokens still on the bonding curve, with bonding progress."),
			handler: stageHandler(svc, moralis.StageBonding),
		},
		{
			spec: tools.Spec{
				Name:        "get_token_info",
				Description: "Get metadata (name, symbol, decimals, logo) for a token by its mint address.",
				Params: map[string]tools.ParamSpec{
					"address": {Type: tools.TypeString, Required: true, Description: "Token mint address"},
				},
				Hints: tools.Hints{ReadOnly: true, Idempotent: true, OpenWorld: true},
			},
			handler: func(ctx context.Context, args map[string]any) (string, error) {
				out, err := svc.TokenInfo(ctx, args["address"].(string))
				if err != nil {
					return "", err
				}
				return jsonText(out)
			},
		},
		{
			spec: tools.Spec{
				Name:        "get_token_price",
				Description: "Get the current USD and native price for a token by its mint address.",
				Params: map[string]tools.ParamSpec{
					"address": {Type: tools.TypeString, Required: true, Description: "Token mint address"},
				},
				Hints: tools.Hints{ReadOnly: true, Idempotent: true, OpenWorld: true},
			},
			handler: func(ctx context.Context, args map[string]any) (string, error) {
				out, err := svc.TokenPrice(ctx, args["address"].(string))
				if err != nil {
					return "", err
				}
				return jsonText(out)
			},
		},
		{
			spec: tools.Spec{
				Name:        "buy_token",
				Description: "Buy a pump.fun token with SOL. Submits a real transaction; status \"sent\" means submitted, not confirmed.",
				Params: map[string]tools.ParamSpec{
					"address":     {Type: tools.TypeString, Required: true, Description: "Token mint address"},
					"solAmount":   {Type: tools.TypeNumber, Required: true, Description: "Amount of SOL to spend"},
					"slippage":    {Type: tools.TypeNumber, Default: 1.0, Description: "Max acceptable slippage in percent"},
					"priorityFee": {Type: tools.TypeNumber, Default: 0.00001, Description: "Priority fee in SOL"},
					"pool":        {Type: tools.TypeString, Default: "pump", Description: "Pool to trade on (pump, raydium, auto)"},
				},
				Hints: tools.Hints{Destructive: true, OpenWorld: true},
			},
			handler: func(ctx context.Context, args map[string]any) (string, error) {
				out, err := svc.Buy(ctx, args["address"].(string), args["solAmount"].(float64), tradeOpts(args))
				if err != nil {
					return "", err
				}
				return jsonText(out)
			},
		},
		{
			spec: tools.Spec{
				Name:        "sell_token",
				Description: "Sell a pump.fun token. tokenAmount is a token-denominated amount or a percentage like \"100%\" to sell the entire balance.",
				Params: map[string]tools.ParamSpec{
					"address":     {Type: tools.TypeString, Required: true, Description: "Token mint address"},
					"tokenAmount": {Type: tools.TypeString, Required: true, Description: "Amount of tokens to sell, or a percentage string like \"100%\""},
					"slippage":    {Type: tools.TypeNumber, Default: 1.0, Description: "Max acceptable slippage in percent"},
					"priorityFee": {Type: tools.TypeNumber, Default: 0.00001, Description: "Priority fee in SOL"},
					"pool":        {Type: tools.TypeString, Default: "pump", Description: "Pool to trade on (pump, raydium, auto)"},
				},
				Hints: tools.Hints{Destructive: true, OpenWorld: true},
			},
			handler: func(ctx context.Context, args map[string]any) (string, error) {
				out, err := svc.Sell(ctx, args["address"].(string), args["tokenAmount"].(string), tradeOpts(args))
				if err != nil {
					return "", err
				}
				return jsonText(out)
			},
		},
	}

	for _, s := range specs {
		if err := reg.Register(s.spec, s.handler); err != nil {
			return err
		}
	}
	return nil
}

func stageSpec(name, description string) tools.Spec {
	return tools.Spec{
		Name:        name,
		Description: description,
		Params: map[string]tools.ParamSpec{
			"limit":  {Type: tools.TypeNumber, Default: 100.0, Description: "Maximum number of tokens to return"},
			"cursor": {Type: tools.TypeString, Description: "Pagination cursor from a previous page"},
		},
		Hints: tools.Hints{ReadOnly: true, Idempotent: true, OpenWorld: true},
	}
}

func stageHandler(svc *trading.Service, stage moralis.Stage) tools.Handler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		limit := int(args["limit"].(float64))
		cursor, _ := args["cursor"].(string)
		out, err := svc.ListByStage(ctx, stage, limit, cursor)
		if err != nil {
			return "", err
		}
		return jsonText(out)
	}
}

func tradeOpts(args map[string]any) trading.TradeOpts {
	return trading.TradeOpts{
		SlippagePct: args["slippage"].(float64),
		PriorityFee: args["priorityFee"].(float64),
		Pool:        args["pool"].(string),
	}
}

// RegisterTwitter registers the tweet tools for the credential tiers that are
// configured. With no credentials at all it registers nothing, which is the
// documented degraded mode.
func RegisterTwitter(reg *tools.Registry, tw *twitter.Client) error {
	if tw.CanSearch() {
		err := reg.Register(tools.Spec{
			Name:        "search_tweets",
			Description: "Search recent tweets matching a query.",
			Params: map[string]tools.ParamSpec{
				"query": {Type: tools.TypeString, Required: true, Description: "Search query"},
				"count": {Type: tools.TypeNumber, Default: 10.0, Description: "Maximum number of tweets to return"},
			},
			Hints: tools.Hints{ReadOnly: true, OpenWorld: true},
		}, func(ctx context.Context, args map[string]any) (string, error) {
			out, err := tw.SearchTweets(ctx, args["query"].(string), int(args["count"].(float64)))
			if err != nil {
				return "", err
			}
			return jsonText(out)
		})
		if err != nil {
			return err
		}
	}

	if tw.CanPost() {
		err := reg.Register(tools.Spec{
			Name:        "post_tweet",
			Description: "Post a tweet from the configured account.",
			Params: map[string]tools.ParamSpec{
				"text": {Type: tools.TypeString, Required: true, Description: "Tweet text"},
			},
			Hints: tools.Hints{Destructive: true, OpenWorld: true},
		}, func(ctx context.Context, args map[string]any) (string, error) {
			out, err := tw.PostTweet(ctx, args["text"].(string))
			if err != nil {
				return "", err
			}
			return jsonText(out)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func jsonText(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(data), nil
}
