package main

import (
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"komibot/internal/format"
	"komibot/internal/model"
)

// ═══════════════════════════════════════════════════════════════════
//  ADMIN COMMANDS
// ═══════════════════════════════════════════════════════════════════

// resolveTarget extracts the target user from a reply or a numeric
// argument. usage is the hint shown when neither is present.
func resolveTarget(bot BotAPI, msg *tgbotapi.Message, args, usage string) (int64, bool) {
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		return msg.ReplyToMessage.From.ID, true
	}
	args = strings.TrimSpace(args)
	if args == "" {
		reply(bot, msg.Chat.ID, "❌ Reply to a user or use "+usage)
		return 0, false
	}
	id, err := strconv.ParseInt(strings.Fields(args)[0], 10, 64)
	if err != nil || id <= 0 {
		reply(bot, msg.Chat.ID, "❌ Invalid user ID.")
		return 0, false
	}
	return id, true
}

type BanCmd struct{}

func (c *BanCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	target, ok := resolveTarget(bot, msg, args, "/ban <user_id>")
	if !ok {
		return
	}
	if ctx.Perms.IsAdmin(target) {
		reply(bot, msg.Chat.ID, "❌ Cannot ban an admin.")
		return
	}
	if err := ctx.Perms.Ban(target); err != nil {
		slog.Error("ban failed", "target", target, "error", err)
		reply(bot, msg.Chat.ID, "❌ Could not update the user record.")
		return
	}
	reply(bot, msg.Chat.ID, fmt.Sprintf("✅ User %d banned.", target))
}
func (c *BanCmd) Description() string { return "Ban a user from the bot" }

type UnbanCmd struct{}

func (c *UnbanCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	target, ok := resolveTarget(bot, msg, args, "/unban <user_id>")
	if !ok {
		return
	}
	if err := ctx.Perms.Unban(target); err != nil {
		slog.Error("unban failed", "target", target, "error", err)
		reply(bot, msg.Chat.ID, "❌ Could not update the user record.")
		return
	}
	reply(bot, msg.Chat.ID, fmt.Sprintf("✅ User %d unbanned.", target))
}
func (c *UnbanCmd) Description() string { return "Lift a user's ban" }

type AddAdminCmd struct{}

func (c *AddAdminCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	target, ok := resolveTarget(bot, msg, args, "/addadmin <user_id>")
	if !ok {
		return
	}
	if ctx.Perms.IsAdmin(target) {
		reply(bot, msg.Chat.ID, "ℹ️ That user is already an admin.")
		return
	}
	if err := ctx.Perms.AddAdmin(target); err != nil {
		slog.Error("addadmin failed", "target", target, "error", err)
		reply(bot, msg.Chat.ID, "❌ Could not update the user record.")
		return
	}
	reply(bot, msg.Chat.ID, fmt.Sprintf("✅ User %d promoted to admin.", target))
}
func (c *AddAdminCmd) Description() string { return "Promote a user to admin" }

type DelAdminCmd struct{}

func (c *DelAdminCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	target, ok := resolveTarget(bot, msg, args, "/deladmin <user_id>")
	if !ok {
		return
	}
	if target == msg.From.ID {
		reply(bot, msg.Chat.ID, "❌ You cannot demote yourself.")
		return
	}
	if !ctx.Perms.IsAdmin(target) {
		reply(bot, msg.Chat.ID, "ℹ️ That user is not an admin.")
		return
	}
	if err := ctx.Perms.RemoveAdmin(target); err != nil {
		slog.Error("deladmin failed", "target", target, "error", err)
		reply(bot, msg.Chat.ID, "❌ Could not update the user record.")
		return
	}
	reply(bot, msg.Chat.ID, fmt.Sprintf("✅ User %d demoted.", target))
}
func (c *DelAdminCmd) Description() string { return "Demote an admin" }

type SetProCmd struct{}

func (c *SetProCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	target, ok := resolveTarget(bot, msg, args, "/setpro <user_id>")
	if !ok {
		return
	}
	if err := ctx.Perms.SetPro(target, true); err != nil {
		slog.Error("setpro failed", "target", target, "error", err)
		reply(bot, msg.Chat.ID, "❌ Could not update the user record.")
		return
	}
	reply(bot, msg.Chat.ID, fmt.Sprintf("⭐ User %d now has pro status.", target))
}
func (c *SetProCmd) Description() string { return "Grant pro status to a user" }

type DelProCmd struct{}

func (c *DelProCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	target, ok := resolveTarget(bot, msg, args, "/delpro <user_id>")
	if !ok {
		return
	}
	if err := ctx.Perms.SetPro(target, false); err != nil {
		slog.Error("delpro failed", "target", target, "error", err)
		reply(bot, msg.Chat.ID, "❌ Could not update the user record.")
		return
	}
	reply(bot, msg.Chat.ID, fmt.Sprintf("✅ Pro status removed from user %d.", target))
}
func (c *DelProCmd) Description() string { return "Revoke pro status" }

type StatsCmd struct{}

func (c *StatsCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	users, err := ctx.Store.ListUsers()
	if err != nil {
		slog.Error("stats query failed", "error", err)
		reply(bot, msg.Chat.ID, "❌ Could not read the user database.")
		return
	}
	var admins, banned, pro int
	for _, u := range users {
		if u.IsAdmin {
			admins++
		}
		if u.IsBanned {
			banned++
		}
		if u.IsPro {
			pro++
		}
	}
	uptime := time.Since(ctx.StartTime)
	text := fmt.Sprintf(`📊 <b>Bot Statistics</b>

<b>👥 Users:</b> %d
<b>👑 Admins:</b> %d
<b>⭐ Pro:</b> %d
<b>🚫 Banned:</b> %d

<b>🎮 Active games:</b> %d
<b>⏱ Uptime:</b> %s
<b>🔒 Force join:</b> %s`,
		len(users), admins, pro, banned,
		ctx.Games.Len(), format.FormatUptime(uint64(uptime.Seconds())),
		format.BoolToEmoji(ctx.Joins.Enabled()))
	sendHTML(bot, msg.Chat.ID, text)
}
func (c *StatsCmd) Description() string { return "Show bot usage statistics" }

type UsersCmd struct{}

func (c *UsersCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	users, err := ctx.Store.ListUsers()
	if err != nil {
		slog.Error("users query failed", "error", err)
		reply(bot, msg.Chat.ID, "❌ Could not read the user database.")
		return
	}
	if len(users) == 0 {
		reply(bot, msg.Chat.ID, "🤷 No users recorded yet.")
		return
	}
	var sb strings.Builder
	sb.WriteString("👥 <b>Known Users</b>\n\n")
	for _, u := range users {
		sb.WriteString(fmt.Sprintf("• <code>%d</code> %s", u.ID, userBadges(u)))
		sb.WriteString(" " + format.Truncate(u.DisplayName(), 32) + "\n")
	}
	sendHTML(bot, msg.Chat.ID, sb.String())
}
func (c *UsersCmd) Description() string { return "List known users" }

func userBadges(u model.User) string {
	var badges []string
	if u.IsAdmin {
		badges = append(badges, "👑")
	}
	if u.IsPro {
		badges = append(badges, "⭐")
	}
	if u.IsBanned {
		badges = append(badges, "🚫")
	}
	return strings.Join(badges, "")
}

type SysInfoCmd struct{}

func (c *SysInfoCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	sendHTML(bot, msg.Chat.ID, getSysInfoText())
}
func (c *SysInfoCmd) Description() string { return "Show host system information" }

func getSysInfoText() string {
	var sb strings.Builder
	sb.WriteString("🖥 <b>System Information</b>\n\n")

	if info, err := host.Info(); err == nil {
		sb.WriteString(fmt.Sprintf("<b>Host:</b> %s\n", info.Hostname))
		sb.WriteString(fmt.Sprintf("<b>OS:</b> %s %s (%s)\n", info.Platform, info.PlatformVersion, info.KernelArch))
		sb.WriteString(fmt.Sprintf("<b>Uptime:</b> %s\n", format.FormatUptime(info.Uptime)))
	}
	sb.WriteString(fmt.Sprintf("<b>Go:</b> %s, %d goroutines\n\n", runtime.Version(), runtime.NumGoroutine()))

	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
		sb.WriteString(fmt.Sprintf("<b>🔲 CPU:</b> %.1f%%\n%s\n", percents[0], format.MakeProgressBar(percents[0])))
	}
	if avg, err := load.Avg(); err == nil {
		sb.WriteString(fmt.Sprintf("<b>📈 Load:</b> %.2f / %.2f / %.2f\n", avg.Load1, avg.Load5, avg.Load15))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		sb.WriteString(fmt.Sprintf("\n<b>🧠 RAM:</b> %s / %s (%.1f%%)\n%s\n",
			format.FormatBytes(vm.Used), format.FormatBytes(vm.Total), vm.UsedPercent,
			format.MakeProgressBar(vm.UsedPercent)))
	}
	if du, err := disk.Usage("/"); err == nil {
		sb.WriteString(fmt.Sprintf("\n<b>💾 Disk:</b> %s / %s (%.1f%%)\n%s\n",
			format.FormatBytes(du.Used), format.FormatBytes(du.Total), du.UsedPercent,
			format.MakeProgressBar(du.UsedPercent)))
	}
	return sb.String()
}
