package main

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func newGatedAppContext(channels ...string) (*AppContext, *memStore) {
	store := newMemStore()
	cfg := defaultConfig()
	cfg.BotToken = "test-token"
	cfg.ForceJoin.Channels = channels

	ctx := InitApp(cfg, store)
	ctx.Perms.SeedAdmins([]int64{1})
	return ctx, store
}

func countMembershipLookups(bot *fakeBot) int {
	n := 0
	for _, c := range bot.requests {
		if _, ok := c.(tgbotapi.GetChatMemberConfig); ok {
			n++
		}
	}
	return n
}

func TestMembershipGateDisabledWithoutChannels(t *testing.T) {
	ctx, _ := newTestAppContext()
	bot := &fakeBot{}

	passed, missing := ctx.Joins.Check(bot, 2)
	if !passed || missing != nil {
		t.Fatal("gate without channels must pass everyone")
	}
	if countMembershipLookups(bot) != 0 {
		t.Fatal("disabled gate must not hit the membership API")
	}
}

func TestMembershipGateBlocksNonMember(t *testing.T) {
	ctx, _ := newGatedAppContext("@komihub")
	bot := &fakeBot{memberStatus: "left"}

	passed, missing := ctx.Joins.Check(bot, 2)
	if passed {
		t.Fatal("left member must be blocked")
	}
	if len(missing) != 1 || missing[0] != "@komihub" {
		t.Fatalf("unexpected missing channels: %v", missing)
	}
}

func TestMembershipGateUnreadableLookupBlocks(t *testing.T) {
	ctx, _ := newGatedAppContext("@komihub")
	bot := &fakeBot{} // no member payload at all

	if passed, _ := ctx.Joins.Check(bot, 2); passed {
		t.Fatal("unanswerable lookup must count as not joined")
	}
}

func TestMembershipGatePassPersistsAndSkipsAPI(t *testing.T) {
	ctx, store := newGatedAppContext("@komihub", "@komichat")
	bot := &fakeBot{memberStatus: "member"}

	passed, _ := ctx.Joins.Check(bot, 2)
	if !passed {
		t.Fatal("member of all channels must pass")
	}
	if u, ok, _ := store.GetUser(2); !ok || !u.JoinPassed {
		t.Fatal("passed check must be persisted on the user record")
	}

	before := countMembershipLookups(bot)
	if passed, _ := ctx.Joins.Check(bot, 2); !passed {
		t.Fatal("persisted pass must short-circuit")
	}
	if countMembershipLookups(bot) != before {
		t.Fatal("second check must not hit the membership API again")
	}
}

func TestCommandBlockedUntilJoined(t *testing.T) {
	ctx, _ := newGatedAppContext("@komihub")
	bot := &fakeBot{memberStatus: "left"}

	spy := &spyCmd{}
	ctx.Commands.Register("spy", spy)
	ctx.Commands.Execute(ctx, bot, command("/spy", 2, 1))

	if spy.calls != 0 {
		t.Fatal("gated user must not reach the handler")
	}
	if !strings.Contains(bot.lastText(t), "Join Required Channels") {
		t.Fatalf("expected join prompt, got %q", bot.lastText(t))
	}
}

func TestCommandAllowedAfterJoining(t *testing.T) {
	ctx, _ := newGatedAppContext("@komihub")
	bot := &fakeBot{memberStatus: "member"}

	spy := &spyCmd{}
	ctx.Commands.Register("spy", spy)
	ctx.Commands.Execute(ctx, bot, command("/spy", 2, 1))

	if spy.calls != 1 {
		t.Fatalf("joined user should reach the handler, calls=%d", spy.calls)
	}
}

func TestBanCheckedBeforeMembership(t *testing.T) {
	ctx, _ := newGatedAppContext("@komihub")
	bot := &fakeBot{memberStatus: "left"}

	ctx.Perms.Ban(666)
	ctx.Commands.Execute(ctx, bot, command("/ping", 666, 1))

	if !strings.Contains(bot.lastText(t), "banned") {
		t.Fatalf("ban must win over the join prompt, got %q", bot.lastText(t))
	}
	if countMembershipLookups(bot) != 0 {
		t.Fatal("banned users must not trigger membership lookups")
	}
}

func TestCheckMembershipCallback(t *testing.T) {
	ctx, _ := newGatedAppContext("@komihub")

	blocked := &fakeBot{memberStatus: "left"}
	ctx.Callbacks.Dispatch(ctx, blocked, pressOf("check_membership"))
	// Ack, membership lookup, and the still-missing alert.
	if len(blocked.requests) < 3 {
		t.Fatalf("expected ack + lookup + alert, got %d requests", len(blocked.requests))
	}
	if len(blocked.sent) != 0 {
		t.Fatal("failed re-check must not edit the message")
	}

	joined := &fakeBot{memberStatus: "member"}
	ctx.Callbacks.Dispatch(ctx, joined, pressOf("check_membership"))
	if len(joined.sent) == 0 || !strings.Contains(textOf(joined.sent[0]), "Thanks for joining") {
		t.Fatal("passed re-check should edit the prompt message")
	}
}
