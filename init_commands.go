package main

func SetupCommandRegistry() *CommandRegistry {
	r := NewCommandRegistry()

	// Basic
	r.Register("start", &StartCmd{})
	r.Register("help", &HelpCmd{})
	r.Register("uid", &UIDCmd{})
	r.Register("id", &UIDCmd{}) // Alias
	r.Register("ping", &PingCmd{})
	r.Register("about", &AboutCmd{})

	// Games
	r.Register("guess", &GuessCmd{})
	r.Register("ttt", &TTTCmd{})
	r.Register("tictactoe", &TTTCmd{}) // Alias
	r.Register("rps", &RPSCmd{})
	r.Register("quit", &QuitCmd{})

	// Admin
	r.Register("ban", &BanCmd{}, AdminOnly)
	r.Register("unban", &UnbanCmd{}, AdminOnly)
	r.Register("addadmin", &AddAdminCmd{}, AdminOnly)
	r.Register("deladmin", &DelAdminCmd{}, AdminOnly)
	r.Register("setpro", &SetProCmd{}, AdminOnly)
	r.Register("delpro", &DelProCmd{}, AdminOnly)
	r.Register("stats", &StatsCmd{}, AdminOnly)
	r.Register("users", &UsersCmd{}, AdminOnly)
	r.Register("sysinfo", &SysInfoCmd{}, AdminOnly)

	return r
}

func SetupCallbackRegistry() *CallbackRegistry {
	r := NewCallbackRegistry()

	// Membership gate
	r.Register("check_membership", handleCheckMembership)

	// Menu
	r.Register("get_uid", handleGetUID)
	r.Register("about_bot", handleAboutBot)
	r.Register("help_menu", handleHelpMenu)
	r.Register("back_start", handleBackStart)
	r.Register("close_menu", handleCloseMenu)

	// Games
	r.Register("ttt_", handleTTTCallback)
	r.Register("rps_", handleRPSCallback)

	return r
}
