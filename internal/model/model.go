// Package model estimates token counts and request costs.
package model

import (
	"github.com/pkg/errors"
	"github.com/pkoukk/tiktoken-go"
	"github.com/shopspring/decimal"

	"github.com/malonaz/gcommit/internal/llm"
)

// Rough per-message overhead of the chat format.
const tokensPerMessage = 4

// Pricing of a model, per 1000 tokens.
type Pricing struct {
	Input  decimal.Decimal
	Output decimal.Decimal
}

var pricingByModel = map[string]Pricing{
	"gpt-4o":            {Input: decimal.RequireFromString("0.0025"), Output: decimal.RequireFromString("0.01")},
	"gpt-4o-mini":       {Input: decimal.RequireFromString("0.00015"), Output: decimal.RequireFromString("0.0006")},
	"gpt-4.1":           {Input: decimal.RequireFromString("0.002"), Output: decimal.RequireFromString("0.008")},
	"gpt-4.1-mini":      {Input: decimal.RequireFromString("0.0004"), Output: decimal.RequireFromString("0.0016")},
	"claude-sonnet-4-0": {Input: decimal.RequireFromString("0.003"), Output: decimal.RequireFromString("0.015")},
	"claude-haiku-4-5":  {Input: decimal.RequireFromString("0.001"), Output: decimal.RequireFromString("0.005")},
}

// PricingFor returns the pricing of the given model, zero for unknown models.
func PricingFor(modelName string) Pricing {
	return pricingByModel[modelName]
}

// CalculateRequestCost of the given messages.
func CalculateRequestCost(modelName string, messages ...*llm.Message) (int64, decimal.Decimal, error) {
	tokens, err := countTokens(modelName, messages...)
	if err != nil {
		return 0, decimal.Zero, err
	}
	cost := PricingFor(modelName).Input.Mul(decimal.NewFromInt(tokens)).Div(decimal.NewFromInt(1000))
	return tokens, cost, nil
}

// CalculateResponseCost of the given completion.
func CalculateResponseCost(modelName, completion string) (int64, decimal.Decimal, error) {
	tokens, err := countTokens(modelName, &llm.Message{Role: llm.AssistantRole, Content: completion})
	if err != nil {
		return 0, decimal.Zero, err
	}
	cost := PricingFor(modelName).Output.Mul(decimal.NewFromInt(tokens)).Div(decimal.NewFromInt(1000))
	return tokens, cost, nil
}

func countTokens(modelName string, messages ...*llm.Message) (int64, error) {
	tkm, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		// Non-openai models are counted with the cl100k encoding.
		tkm, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return 0, errors.Wrap(err, "getting encoding")
		}
	}
	tokens := int64(0)
	for _, message := range messages {
		tokens += tokensPerMessage
		tokens += int64(len(tkm.Encode(message.Content, nil, nil)))
	}
	return tokens, nil
}
