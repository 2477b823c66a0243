package trading

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pumpline/pumpline/internal/moralis"
	"github.com/pumpline/pumpline/internal/pumpportal"
)

type fakePortal struct {
	searchCalls int
	buildCalls  int
	lastTrade   pumpportal.TradeRequest
	tokens      []pumpportal.Token
	raw         []byte
	err         error
}

func (f *fakePortal) SearchTokens(_ context.Context, query string) ([]pumpportal.Token, error) {
	f.searchCalls++
	return f.tokens, f.err
}

func (f *fakePortal) BuildTrade(_ context.Context, tr pumpportal.TradeRequest) ([]byte, error) {
	f.buildCalls++
	f.lastTrade = tr
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

type fakeMeta struct {
	err  error
	meta *moralis.Metadata
	prc  *moralis.Price
	page *moralis.Page
}

func (f *fakeMeta) TokenMetadata(context.Context, string) (*moralis.Metadata, error) {
	return f.meta, f.err
}
func (f *fakeMeta) TokenPrice(context.Context, string) (*moralis.Price, error) {
	return f.prc, f.err
}
func (f *fakeMeta) ListByStage(context.Context, moralis.Stage, int, string) (*moralis.Page, error) {
	return f.page, f.err
}

type fakeSigner struct {
	configured bool
	signCalls  int
	sig        string
	err        error
}

func (f *fakeSigner) Configured() bool { return f.configured }
func (f *fakeSigner) SignAndSend(context.Context, []byte) (string, error) {
	f.signCalls++
	return f.sig, f.err
}

const pubKey = "3ELeRTTg5W5hAYaEFznzFV1jknNFkjHqS8ytwvQEQP1Z"

func TestSearchTokens(t *testing.T) {
	portal := &fakePortal{tokens: []pumpportal.Token{
		{Mint: "A", Name: "Sol", Symbol: "SOL"},
	}}
	svc := NewService(portal, nil, &fakeSigner{}, pubKey)

	out, err := svc.SearchTokens(context.Background(), "sol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 token, got %d", len(out))
	}
	got := out[0]
	if got.Address != "A" || got.Name != "Sol" || got.Symbol != "SOL" || got.Decimals != 9 {
		t.Errorf("unexpected token: %+v", got)
	}
}

func TestBuyWithoutKey_NoNetworkCall(t *testing.T) {
	portal := &fakePortal{}
	signer := &fakeSigner{configured: false}
	svc := NewService(portal, nil, signer, pubKey)

	_, err := svc.Buy(context.Background(), "A", 1, DefaultTradeOpts())
	if !errors.Is(err, ErrTradingUnavailable) {
		t.Fatalf("expected ErrTradingUnavailable, got %v", err)
	}
	if err.Error() != "Wallet private key is not configured. Trading is not available." {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if portal.buildCalls != 0 {
		t.Errorf("expected no provider call, got %d", portal.buildCalls)
	}
	if signer.signCalls != 0 {
		t.Errorf("expected no sign call, got %d", signer.signCalls)
	}
}

func TestSellWithoutKey_NoNetworkCall(t *testing.T) {
	portal := &fakePortal{}
	svc := NewService(portal, nil, &fakeSigner{configured: false}, pubKey)

	_, err := svc.Sell(context.Background(), "A", "100%", DefaultTradeOpts())
	if !errors.Is(err, ErrTradingUnavailable) {
		t.Fatalf("expected ErrTradingUnavailable, got %v", err)
	}
	if portal.buildCalls != 0 {
		t.Errorf("expected no provider call, got %d", portal.buildCalls)
	}
}

func TestBuy_Success(t *testing.T) {
	portal := &fakePortal{raw: []byte("rawtx")}
	signer := &fakeSigner{configured: true, sig: "sig123"}
	svc := NewService(portal, nil, signer, pubKey)

	res, err := svc.Buy(context.Background(), "MintA", 1.5, DefaultTradeOpts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.Status != "sent" {
		t.Errorf("expected success/sent, got %+v", res)
	}
	if res.Signature != "sig123" {
		t.Errorf("unexpected signature %q", res.Signature)
	}
	if res.ExplorerURL != "https://solscan.io/tx/sig123" {
		t.Errorf("unexpected explorer URL %q", res.ExplorerURL)
	}
	tr := portal.lastTrade
	if tr.Action != "buy" || tr.Mint != "MintA" || tr.Amount != "1.5" || !tr.DenominatedInSol {
		t.Errorf("unexpected trade request: %+v", tr)
	}
	if tr.SlippagePct != 1.0 || tr.PriorityFee != 0.00001 || tr.Pool != "pump" {
		t.Errorf("unexpected trade defaults: %+v", tr)
	}
}

func TestSell_PercentagePassthrough(t *testing.T) {
	portal := &fakePortal{raw: []byte("rawtx")}
	signer := &fakeSigner{configured: true, sig: "sig456"}
	svc := NewService(portal, nil, signer, pubKey)

	res, err := svc.Sell(context.Background(), "MintA", "100%", DefaultTradeOpts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tr := portal.lastTrade
	if tr.Amount != "100%" {
		t.Errorf("percentage amount must pass through verbatim, got %q", tr.Amount)
	}
	if tr.DenominatedInSol {
		t.Error("sell must be token-denominated")
	}
	if tr.Action != "sell" {
		t.Errorf("unexpected action %q", tr.Action)
	}
	if res.Amount != "100%" {
		t.Errorf("result should echo the amount, got %q", res.Amount)
	}
}

func TestBuy_BuildFailureSurfaces(t *testing.T) {
	portal := &fakePortal{err: errors.New("portal down")}
	signer := &fakeSigner{configured: true}
	svc := NewService(portal, nil, signer, pubKey)

	_, err := svc.Buy(context.Background(), "A", 1, DefaultTradeOpts())
	if err == nil || !strings.Contains(err.Error(), "portal down") {
		t.Fatalf("expected build failure to surface, got %v", err)
	}
	if signer.signCalls != 0 {
		t.Error("must not sign after a build failure")
	}
}

func TestTokenInfo_NoProvider(t *testing.T) {
	svc := NewService(&fakePortal{}, nil, &fakeSigner{}, pubKey)

	info, err := svc.TokenInfo(context.Background(), "MintA")
	if err != nil {
		t.Fatalf("placeholder path must not error: %v", err)
	}
	if info.Name != "Unknown Token" || info.Symbol != "UNKNOWN" || info.Decimals != 9 {
		t.Errorf("unexpected placeholder: %+v", info)
	}
	if info.Note == "" {
		t.Error("placeholder must carry an explanatory note")
	}
}

func TestTokenInfo_ProviderFailure(t *testing.T) {
	meta := &fakeMeta{err: errors.New("429 too many requests")}
	svc := NewService(&fakePortal{}, meta, &fakeSigner{}, pubKey)

	info, err := svc.TokenInfo(context.Background(), "MintA")
	if err != nil {
		t.Fatalf("fallback path must not error: %v", err)
	}
	if info.Name != "Unknown Token" {
		t.Errorf("expected placeholder, got %+v", info)
	}
	if !strings.Contains(info.Note, "429") {
		t.Errorf("note should carry the reason, got %q", info.Note)
	}
}

func TestTokenInfo_ProviderSuccess(t *testing.T) {
	meta := &fakeMeta{meta: &moralis.Metadata{Name: "Sol", Symbol: "SOL", Decimals: "6"}}
	svc := NewService(&fakePortal{}, meta, &fakeSigner{}, pubKey)

	info, err := svc.TokenInfo(context.Background(), "MintA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "Sol" || info.Symbol != "SOL" || info.Decimals != 6 {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.Note != "" {
		t.Errorf("live result should carry no note, got %q", info.Note)
	}
}

func TestTokenPrice_NoProvider(t *testing.T) {
	svc := NewService(&fakePortal{}, nil, &fakeSigner{}, pubKey)

	p, err := svc.TokenPrice(context.Background(), "MintA")
	if err != nil {
		t.Fatalf("placeholder path must not error: %v", err)
	}
	if p.USDPrice != 0 {
		t.Errorf("expected zero price, got %v", p.USDPrice)
	}
	if p.Note == "" {
		t.Error("placeholder must carry an explanatory note")
	}
}

func TestListByStage_PlaceholderOnFailure(t *testing.T) {
	meta := &fakeMeta{err: errors.New("gateway timeout")}
	svc := NewService(&fakePortal{}, meta, &fakeSigner{}, pubKey)

	page, err := svc.ListByStage(context.Background(), moralis.StageGraduated, 0, "")
	if err != nil {
		t.Fatalf("fallback path must not error: %v", err)
	}
	if len(page.Tokens) != 1 {
		t.Fatalf("expected one synthetic entry, got %d", len(page.Tokens))
	}
	if page.Note == "" {
		t.Error("placeholder page must carry an explanatory note")
	}
	if page.Stage != "graduated" {
		t.Errorf("unexpected stage %q", page.Stage)
	}
}

func TestListByStage_Success(t *testing.T) {
	meta := &fakeMeta{page: &moralis.Page{
		Cursor: "next",
		Result: []moralis.ListedToken{{TokenAddress: "A", Name: "Sol", Symbol: "SOL"}},
	}}
	svc := NewService(&fakePortal{}, meta, &fakeSigner{}, pubKey)

	page, err := svc.ListByStage(context.Background(), moralis.StageBonding, 50, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Cursor != "next" || len(page.Tokens) != 1 || page.Tokens[0].Address != "A" {
		t.Errorf("unexpected page: %+v", page)
	}
	if page.Note != "" {
		t.Errorf("live page should carry no note, got %q", page.Note)
	}
}
