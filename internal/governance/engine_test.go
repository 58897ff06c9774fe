package governance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/daojo/internal/metrics"
	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage/memory"
)

const (
	alice = "alice"
	bob   = "bob"
	carol = "carol"
	dave  = "dave"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	clock := time.Unix(1_700_000_000, 0)
	base := []Option{
		WithClock(func() time.Time { return clock }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return NewEngine(memory.New(), append(base, opts...)...)
}

// fundedWallet opens a wallet for owner and deposits amount into it.
func fundedWallet(t *testing.T, e *Engine, owner string, amount uint64) string {
	t.Helper()
	ctx := context.Background()
	acct, err := e.OpenAccount(ctx, owner)
	if err != nil {
		t.Fatalf("OpenAccount(%s) failed: %v", owner, err)
	}
	if amount > 0 {
		if _, err := e.Deposit(ctx, owner, acct.ID, amount); err != nil {
			t.Fatalf("Deposit(%s) failed: %v", owner, err)
		}
	}
	return acct.ID
}

func balanceOf(t *testing.T, e *Engine, owner, accountID string) uint64 {
	t.Helper()
	acct, err := e.GetAccount(context.Background(), owner, accountID)
	if err != nil {
		t.Fatalf("GetAccount(%s) failed: %v", accountID, err)
	}
	return acct.Balance
}

func treasuryBalance(t *testing.T, e *Engine, circleID string) uint64 {
	t.Helper()
	snap, err := e.GetCircle(context.Background(), alice, circleID)
	if err != nil {
		t.Fatalf("GetCircle failed: %v", err)
	}
	return snap.TreasuryBalance
}

// threeMemberCircle creates a circle with alice, bob and carol, each of
// whom has contributed once from a wallet seeded with 1000.
func threeMemberCircle(t *testing.T, e *Engine) (*models.Circle, map[string]string) {
	t.Helper()
	ctx := context.Background()

	circle, err := e.CreateCircle(ctx, alice, "Lagos Savers", 100, "LAGOS")
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}
	wallets := make(map[string]string)
	for _, m := range []string{alice, bob, carol} {
		if m != alice {
			if _, err := e.JoinCircle(ctx, m, circle.ID, "LAGOS"); err != nil {
				t.Fatalf("JoinCircle(%s) failed: %v", m, err)
			}
		}
		wallets[m] = fundedWallet(t, e, m, 1000)
		if _, err := e.Contribute(ctx, m, circle.ID, "LAGOS", wallets[m]); err != nil {
			t.Fatalf("Contribute(%s) failed: %v", m, err)
		}
	}
	return circle, wallets
}

func TestCreateCircle(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	circle, err := e.CreateCircle(ctx, alice, "Lagos Savers", 100, "LAGOS")
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}

	wantID, wantBump := CircleAddress("LAGOS")
	if circle.ID != wantID || circle.Bump != wantBump {
		t.Errorf("circle address = %s/%d, want %s/%d", circle.ID, circle.Bump, wantID, wantBump)
	}
	if circle.Creator != alice {
		t.Errorf("creator = %s, want %s", circle.Creator, alice)
	}
	if got := circle.Members.Members(); len(got) != 1 || got[0] != alice {
		t.Errorf("members = %v, want [alice]", got)
	}
	if circle.CreatedAt != 1_700_000_000 {
		t.Errorf("created_at = %d, want clock time", circle.CreatedAt)
	}

	snap, err := e.GetCircle(ctx, alice, circle.ID)
	if err != nil {
		t.Fatalf("GetCircle failed: %v", err)
	}
	if snap.TreasuryAccount != TreasuryAccountID("LAGOS") {
		t.Errorf("treasury account = %s, want derived ID", snap.TreasuryAccount)
	}
	if snap.TreasuryBalance != 0 {
		t.Errorf("treasury balance = %d, want 0", snap.TreasuryBalance)
	}
}

func TestGetCircleHidesInviteCodeFromOutsiders(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	circle, err := e.CreateCircle(ctx, alice, "Lagos Savers", 100, "SECRET")
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}

	snap, err := e.GetCircle(ctx, dave, circle.ID)
	if err != nil {
		t.Fatalf("GetCircle (outsider) failed: %v", err)
	}
	if snap.Circle.InviteCode != "" {
		t.Fatalf("outsider saw invite code %q", snap.Circle.InviteCode)
	}
	if snap.Circle.Name != "Lagos Savers" || snap.TreasuryAccount != TreasuryAccountID("SECRET") {
		t.Errorf("outsider snapshot = %+v", snap)
	}
	if _, err := e.JoinCircle(ctx, dave, circle.ID, snap.Circle.InviteCode); !errors.Is(err, ErrInvalidInviteCode) {
		t.Errorf("join with redacted code: err = %v, want ErrInvalidInviteCode", err)
	}

	snap, err = e.GetCircle(ctx, alice, circle.ID)
	if err != nil {
		t.Fatalf("GetCircle (member) failed: %v", err)
	}
	if snap.Circle.InviteCode != "SECRET" {
		t.Errorf("member invite code = %q, want SECRET", snap.Circle.InviteCode)
	}
}

func TestCreateCircleDuplicateInviteCode(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if _, err := e.CreateCircle(ctx, alice, "First", 100, "LAGOS"); err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}
	_, err := e.CreateCircle(ctx, bob, "Second", 50, "LAGOS")
	if !errors.Is(err, ErrDuplicateInviteCode) {
		t.Fatalf("err = %v, want ErrDuplicateInviteCode", err)
	}

	circleID, _ := CircleAddress("LAGOS")
	snap, err := e.GetCircle(ctx, alice, circleID)
	if err != nil {
		t.Fatalf("GetCircle failed: %v", err)
	}
	if snap.Circle.Name != "First" || snap.Circle.Creator != alice {
		t.Errorf("original circle overwritten: %+v", snap.Circle)
	}
}

func TestJoinCircle(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	circle, err := e.CreateCircle(ctx, alice, "Lagos Savers", 100, "LAGOS")
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}

	t.Run("wrong invite code", func(t *testing.T) {
		_, err := e.JoinCircle(ctx, bob, circle.ID, "ABUJA")
		if !errors.Is(err, ErrInvalidInviteCode) {
			t.Errorf("err = %v, want ErrInvalidInviteCode", err)
		}
	})

	t.Run("unknown circle", func(t *testing.T) {
		_, err := e.JoinCircle(ctx, bob, "no-such-circle", "LAGOS")
		if !errors.Is(err, ErrCircleNotFound) {
			t.Errorf("err = %v, want ErrCircleNotFound", err)
		}
	})

	t.Run("creator cannot join twice", func(t *testing.T) {
		_, err := e.JoinCircle(ctx, alice, circle.ID, "LAGOS")
		if !errors.Is(err, ErrAlreadyMember) {
			t.Errorf("err = %v, want ErrAlreadyMember", err)
		}
	})

	t.Run("fills slots in order", func(t *testing.T) {
		if _, err := e.JoinCircle(ctx, bob, circle.ID, "LAGOS"); err != nil {
			t.Fatalf("JoinCircle(bob) failed: %v", err)
		}
		updated, err := e.JoinCircle(ctx, carol, circle.ID, "LAGOS")
		if err != nil {
			t.Fatalf("JoinCircle(carol) failed: %v", err)
		}
		want := []string{alice, bob, carol}
		got := updated.Members.Members()
		if len(got) != len(want) {
			t.Fatalf("members = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("slot %d = %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("full circle leaves roster unchanged", func(t *testing.T) {
		_, err := e.JoinCircle(ctx, dave, circle.ID, "LAGOS")
		if !errors.Is(err, ErrCircleFull) {
			t.Fatalf("err = %v, want ErrCircleFull", err)
		}
		snap, err := e.GetCircle(ctx, alice, circle.ID)
		if err != nil {
			t.Fatalf("GetCircle failed: %v", err)
		}
		if snap.Circle.MemberCount() != 3 || snap.Circle.IsMember(dave) {
			t.Errorf("roster changed after rejected join: %v", snap.Circle.Members.Members())
		}
	})
}

func TestContribute(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	circle, err := e.CreateCircle(ctx, alice, "Lagos Savers", 100, "LAGOS")
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}
	aliceWallet := fundedWallet(t, e, alice, 150)
	daveWallet := fundedWallet(t, e, dave, 500)

	transfer, err := e.Contribute(ctx, alice, circle.ID, "LAGOS", aliceWallet)
	if err != nil {
		t.Fatalf("Contribute failed: %v", err)
	}
	if transfer.Amount != 100 || transfer.Kind != models.TransferKindContribution {
		t.Errorf("transfer = %+v, want contribution of 100", transfer)
	}
	if got := treasuryBalance(t, e, circle.ID); got != 100 {
		t.Errorf("treasury = %d, want 100", got)
	}
	if got := balanceOf(t, e, alice, aliceWallet); got != 50 {
		t.Errorf("alice wallet = %d, want 50", got)
	}

	tests := []struct {
		name    string
		member  string
		code    string
		account string
		want    error
	}{
		{"wrong invite code", alice, "ABUJA", aliceWallet, ErrInvalidInviteCode},
		{"non-member", dave, "LAGOS", daveWallet, ErrNotAMember},
		{"someone else's wallet", alice, "LAGOS", daveWallet, ErrWrongTokenOwner},
		{"unknown wallet", alice, "LAGOS", "missing", ErrAccountNotFound},
		{"insufficient balance", alice, "LAGOS", aliceWallet, ErrInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Contribute(ctx, tt.member, circle.ID, tt.code, tt.account)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if got := treasuryBalance(t, e, circle.ID); got != 100 {
				t.Errorf("treasury = %d after rejected contribution, want 100", got)
			}
		})
	}

	if got := balanceOf(t, e, dave, daveWallet); got != 500 {
		t.Errorf("dave wallet = %d, want 500", got)
	}
}

func TestCreateRequest(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	circle, _ := threeMemberCircle(t, e)

	req, err := e.CreateRequest(ctx, bob, circle.ID, 250, "School fees")
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	wantID, _ := RequestAddress(circle.ID, bob)
	if req.ID != wantID {
		t.Errorf("request ID = %s, want %s", req.ID, wantID)
	}
	if req.Status != models.RequestStatusActive || req.VotesFor != 0 || req.VotesAgainst != 0 || req.Voters.Count != 0 {
		t.Errorf("new request not clean: %+v", req)
	}

	t.Run("second request from same member", func(t *testing.T) {
		_, err := e.CreateRequest(ctx, bob, circle.ID, 10, "Again")
		if !errors.Is(err, ErrRequestExists) {
			t.Errorf("err = %v, want ErrRequestExists", err)
		}
	})

	t.Run("non-member", func(t *testing.T) {
		_, err := e.CreateRequest(ctx, dave, circle.ID, 10, "Not mine")
		if !errors.Is(err, ErrNotAMember) {
			t.Errorf("err = %v, want ErrNotAMember", err)
		}
	})

	t.Run("amount above treasury is accepted", func(t *testing.T) {
		if _, err := e.CreateRequest(ctx, carol, circle.ID, 1_000_000, "Big"); err != nil {
			t.Errorf("CreateRequest failed: %v", err)
		}
	})

	reqs, err := e.ListRequests(ctx, alice, circle.ID)
	if err != nil {
		t.Fatalf("ListRequests failed: %v", err)
	}
	if len(reqs) != 2 {
		t.Errorf("ListRequests returned %d requests, want 2", len(reqs))
	}
	if _, err := e.ListRequests(ctx, dave, circle.ID); !errors.Is(err, ErrNotAMember) {
		t.Errorf("ListRequests by non-member: err = %v, want ErrNotAMember", err)
	}
}

func TestFullLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	e := newTestEngine(t, WithMetrics(m))
	ctx := context.Background()

	circle, wallets := threeMemberCircle(t, e)
	if got := treasuryBalance(t, e, circle.ID); got != 300 {
		t.Fatalf("treasury = %d, want 300", got)
	}

	req, err := e.CreateRequest(ctx, bob, circle.ID, 250, "School fees")
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	req, err = e.VoteOnRequest(ctx, alice, req.ID, models.VoteYes)
	if err != nil {
		t.Fatalf("vote 1 failed: %v", err)
	}
	if req.Status != models.RequestStatusActive {
		t.Fatalf("status after one yes = %s, want ACTIVE", req.Status)
	}

	if _, _, err := e.DisburseFunds(ctx, carol, circle.ID, req.ID, wallets[bob]); !errors.Is(err, ErrRequestNotApproved) {
		t.Fatalf("early disburse: err = %v, want ErrRequestNotApproved", err)
	}

	req, err = e.VoteOnRequest(ctx, carol, req.ID, models.VoteYes)
	if err != nil {
		t.Fatalf("vote 2 failed: %v", err)
	}
	if req.Status != models.RequestStatusApproved {
		t.Fatalf("status after two yes = %s, want APPROVED", req.Status)
	}
	if _, err := e.VoteOnRequest(ctx, bob, req.ID, models.VoteNo); !errors.Is(err, ErrRequestNotActive) {
		t.Errorf("vote after approval: err = %v, want ErrRequestNotActive", err)
	}

	disbursed, transfer, err := e.DisburseFunds(ctx, dave, circle.ID, req.ID, wallets[bob])
	if err != nil {
		t.Fatalf("DisburseFunds failed: %v", err)
	}
	if disbursed.Status != models.RequestStatusDisbursed {
		t.Errorf("status = %s, want DISBURSED", disbursed.Status)
	}
	if transfer.Amount != 250 || transfer.RequestID != req.ID {
		t.Errorf("transfer = %+v", transfer)
	}
	if got := treasuryBalance(t, e, circle.ID); got != 50 {
		t.Errorf("treasury = %d, want 50", got)
	}
	if got := balanceOf(t, e, bob, wallets[bob]); got != 1150 {
		t.Errorf("bob wallet = %d, want 1150", got)
	}

	if _, _, err := e.DisburseFunds(ctx, alice, circle.ID, req.ID, wallets[bob]); !errors.Is(err, ErrRequestAlreadyDisbursed) {
		t.Errorf("second disburse: err = %v, want ErrRequestAlreadyDisbursed", err)
	}
	if got := treasuryBalance(t, e, circle.ID); got != 50 {
		t.Errorf("treasury = %d after repeated disburse, want 50", got)
	}

	positions, _, err := e.CircleBalances(ctx, alice, circle.ID)
	if err != nil {
		t.Fatalf("CircleBalances failed: %v", err)
	}
	for _, p := range positions {
		if p.Contributed != 100 {
			t.Errorf("%s contributed = %d, want 100", p.Member, p.Contributed)
		}
		if p.Member == bob && (p.Received != 250 || p.Net != -150) {
			t.Errorf("bob position = %+v, want received 250 net -150", p)
		}
	}

	if got := testutil.ToFloat64(m.DisbursedAmount); got != 250 {
		t.Errorf("disbursed metric = %v, want 250", got)
	}
	if got := testutil.ToFloat64(m.TransitionsTotal.WithLabelValues("APPROVED", "DISBURSED")); got != 1 {
		t.Errorf("approved->disbursed transitions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.OperationsTotal.WithLabelValues("disburse_funds", metrics.OutcomeRejected)); got != 2 {
		t.Errorf("rejected disbursements = %v, want 2", got)
	}
}

func TestSoleMemberApprovesOwnRequest(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	circle, err := e.CreateCircle(ctx, alice, "Solo", 100, "SOLO")
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}
	wallet := fundedWallet(t, e, alice, 100)
	if _, err := e.Contribute(ctx, alice, circle.ID, "SOLO", wallet); err != nil {
		t.Fatalf("Contribute failed: %v", err)
	}
	req, err := e.CreateRequest(ctx, alice, circle.ID, 100, "All of it")
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	req, err = e.VoteOnRequest(ctx, alice, req.ID, models.VoteYes)
	if err != nil {
		t.Fatalf("VoteOnRequest failed: %v", err)
	}
	if req.Status != models.RequestStatusApproved {
		t.Fatalf("status = %s, want APPROVED", req.Status)
	}
	if _, _, err := e.DisburseFunds(ctx, alice, circle.ID, req.ID, wallet); err != nil {
		t.Fatalf("DisburseFunds failed: %v", err)
	}
	if got := balanceOf(t, e, alice, wallet); got != 100 {
		t.Errorf("wallet = %d, want 100", got)
	}
}

func TestRejectedRequestCannotBeDisbursed(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	circle, wallets := threeMemberCircle(t, e)

	req, err := e.CreateRequest(ctx, bob, circle.ID, 100, "Trip")
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if _, err := e.VoteOnRequest(ctx, alice, req.ID, models.VoteNo); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if _, err := e.VoteOnRequest(ctx, alice, req.ID, models.VoteYes); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("repeat vote: err = %v, want ErrAlreadyVoted", err)
	}
	req, err = e.VoteOnRequest(ctx, carol, req.ID, models.VoteNo)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if req.Status != models.RequestStatusRejected {
		t.Fatalf("status = %s, want REJECTED", req.Status)
	}
	if req.VotesAgainst != 2 || req.VotesFor != 0 {
		t.Errorf("tallies = %d/%d, want 0/2", req.VotesFor, req.VotesAgainst)
	}

	_, _, err = e.DisburseFunds(ctx, bob, circle.ID, req.ID, wallets[bob])
	if !errors.Is(err, ErrRequestRejected) {
		t.Errorf("err = %v, want ErrRequestRejected", err)
	}
	if got := treasuryBalance(t, e, circle.ID); got != 300 {
		t.Errorf("treasury = %d, want 300", got)
	}
}

func TestDisburseFundsPreconditions(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	circle, wallets := threeMemberCircle(t, e)

	other, err := e.CreateCircle(ctx, dave, "Abuja", 10, "ABUJA")
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}

	// Bob asks for more than the treasury holds and gets approved.
	big, err := e.CreateRequest(ctx, bob, circle.ID, 1000, "Car")
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	for _, v := range []string{alice, carol} {
		if _, err := e.VoteOnRequest(ctx, v, big.ID, models.VoteYes); err != nil {
			t.Fatalf("vote failed: %v", err)
		}
	}

	tests := []struct {
		name        string
		circleID    string
		requestID   string
		destination string
		want        error
	}{
		{"request from another circle", other.ID, big.ID, wallets[bob], ErrWrongCircle},
		{"destination not owned by requester", circle.ID, big.ID, wallets[alice], ErrWrongTokenOwner},
		{"unknown destination", circle.ID, big.ID, "missing", ErrAccountNotFound},
		{"unknown request", circle.ID, "missing", wallets[bob], ErrRequestNotFound},
		{"unknown circle", "missing", big.ID, wallets[bob], ErrCircleNotFound},
		{"treasury too small", circle.ID, big.ID, wallets[bob], ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := e.DisburseFunds(ctx, alice, tt.circleID, tt.requestID, tt.destination)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	req, err := e.GetRequest(ctx, alice, big.ID)
	if err != nil {
		t.Fatalf("GetRequest failed: %v", err)
	}
	if req.Status != models.RequestStatusApproved {
		t.Errorf("status = %s after failed disbursements, want APPROVED", req.Status)
	}
	if got := treasuryBalance(t, e, circle.ID); got != 300 {
		t.Errorf("treasury = %d, want 300", got)
	}
}

func TestNonMemberCannotVoteOrRead(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	circle, _ := threeMemberCircle(t, e)

	req, err := e.CreateRequest(ctx, alice, circle.ID, 50, "Rent")
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if _, err := e.VoteOnRequest(ctx, dave, req.ID, models.VoteYes); !errors.Is(err, ErrNotAMember) {
		t.Errorf("vote: err = %v, want ErrNotAMember", err)
	}
	if _, err := e.GetRequest(ctx, dave, req.ID); !errors.Is(err, ErrNotAMember) {
		t.Errorf("get: err = %v, want ErrNotAMember", err)
	}
	if _, _, err := e.CircleBalances(ctx, dave, circle.ID); !errors.Is(err, ErrNotAMember) {
		t.Errorf("balances: err = %v, want ErrNotAMember", err)
	}

	got, err := e.GetRequest(ctx, bob, req.ID)
	if err != nil {
		t.Fatalf("GetRequest failed: %v", err)
	}
	if got.VotesFor != 0 || got.Voters.Count != 0 {
		t.Errorf("rejected vote was recorded: %+v", got)
	}
}

func TestAccounts(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	wallet := fundedWallet(t, e, alice, 0)
	acct, err := e.Deposit(ctx, alice, wallet, 75)
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if acct.Balance != 75 {
		t.Errorf("balance = %d, want 75", acct.Balance)
	}

	if _, err := e.Deposit(ctx, bob, wallet, 10); !errors.Is(err, ErrWrongTokenOwner) {
		t.Errorf("deposit into another wallet: err = %v, want ErrWrongTokenOwner", err)
	}
	if _, err := e.GetAccount(ctx, bob, wallet); !errors.Is(err, ErrWrongTokenOwner) {
		t.Errorf("read another wallet: err = %v, want ErrWrongTokenOwner", err)
	}
	if _, err := e.GetAccount(ctx, alice, "missing"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("missing account: err = %v, want ErrAccountNotFound", err)
	}

	fundedWallet(t, e, alice, 5)
	accounts, err := e.ListAccounts(ctx, alice)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("ListAccounts returned %d accounts, want 2", len(accounts))
	}
}

func TestWithdraw(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	circle, err := e.CreateCircle(ctx, alice, "Lagos Savers", 100, "LAGOS")
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}
	wallet := fundedWallet(t, e, alice, 300)
	if _, err := e.Contribute(ctx, alice, circle.ID, "LAGOS", wallet); err != nil {
		t.Fatalf("Contribute failed: %v", err)
	}

	tests := []struct {
		name      string
		caller    string
		accountID string
		amount    uint64
		wantErr   error
	}{
		{name: "someone else's wallet", caller: bob, accountID: wallet, amount: 10, wantErr: ErrWrongTokenOwner},
		{name: "treasury", caller: alice, accountID: TreasuryAccountID("LAGOS"), amount: 10, wantErr: ErrWrongTokenOwner},
		{name: "missing account", caller: alice, accountID: "missing", amount: 10, wantErr: ErrAccountNotFound},
		{name: "more than balance", caller: alice, accountID: wallet, amount: 201, wantErr: ErrInsufficientBalance},
		{name: "partial", caller: alice, accountID: wallet, amount: 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct, transfer, err := e.Withdraw(ctx, tt.caller, tt.accountID, tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if acct.Balance != 80 {
				t.Errorf("balance = %d, want 80", acct.Balance)
			}
			if transfer.Kind != models.TransferKindWithdrawal || transfer.ToAccountID != "" ||
				transfer.FromAccountID != wallet || transfer.Amount != 120 {
				t.Errorf("transfer = %+v", transfer)
			}
		})
	}

	if got := balanceOf(t, e, alice, wallet); got != 80 {
		t.Errorf("wallet = %d, want 80", got)
	}
	if got := treasuryBalance(t, e, circle.ID); got != 100 {
		t.Errorf("treasury = %d, want 100", got)
	}
}
