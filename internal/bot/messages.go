package bot

const (
	msgStart = "Salam! Özünü qeyd etmək üçün /register <Ad> yaz.\n" +
		"Məsələn: /register Rza\n" +
		"Mövcud adlar: %s"

	msgRegisterUsage   = "İstifadə: /register <Ad>\nMəs: /register Rza"
	msgRegisterUnknown = "'%s' komandada tapılmadı. Mövcud adlar: %s"
	msgRegistered      = "Qeyd olundu ✅  %s → chat_id: %d"

	msgWhoami  = "chat_id: %d"
	msgGroupID = "Group chat id: %d"

	msgPleaseRegister       = "Zəhmət olmasa əvvəlcə /register <Ad> ilə qeydiyyatdan keç."
	msgAnswerSaved          = "Təşəkkürlər! Cavabını qeyd etdim. ✅"
	msgAnswerSavedNotRemote = "Qeyd edildi. (Qeyd: bu gün remote siyahısında deyilsən.)"

	msgAdminRequired = "Bu əmri yerinə yetirmək üçün admin olmalısan. /auth <PIN>"
	msgAuthUsage     = "İstifadə: /auth <PIN>"
	msgAuthOK        = "✅ Admin təsdiqləndi."
	msgAuthBad       = "❌ Yanlış PIN."

	msgReloadOK     = "✅ config.json yenidən yükləndi və cədvəllər yeniləndi."
	msgReloadFailed = "❌ Yükləmə alınmadı: %v"
	msgOpFailed     = "❌ Əməliyyat alınmadı: %v"
	msgConfigParts  = "Konfiqin hissələri:"

	msgJobHeader = "📅 Bu gün (%s) iş qrafiki:"
	msgJobLine   = "• %s: %s"

	modeVacationLabel = "🌴 Məzuniyyətdə"
	modeRemoteLabel   = "🏠 Remote"
	modeOfficeLabel   = "🏢 Ofisdə"

	msgTeamHeader   = "👥 TEAM:"
	msgTeamEmpty    = "TEAM boşdur."
	msgTeamAddUsage = "İstifadə: /team_add <Ad>"
	msgTeamAdded    = "✅ '%s' TEAM-ə əlavə edildi."
	msgTeamExists   = "'%s' artıq TEAM-də var."
	msgTeamRmUsage  = "İstifadə: /team_rm <Ad>"
	msgTeamRemoved  = "✅ '%s' TEAM-dən silindi."
	msgTeamNotFound = "'%s' TEAM-də tapılmadı."

	msgSchedHeader   = "📅 WEEKLY_SCHEDULE:"
	msgSchedEmpty    = "WEEKLY_SCHEDULE boşdur."
	msgSchedSetUsage = "İstifadə: /sched_set <Ad> <günlər>  (Mon=1..Sun=7, misal: 1,3,5)"
	msgSchedBadDays  = "Günlər 1..7 aralığında olmalıdır. Misal: 1,3,5"
	msgSchedSet      = "✅ %s üçün günlər təyin edildi: %v"

	msgVacHeader   = "🌴 VACATIONS:"
	msgVacEmpty    = "VACATIONS boşdur."
	msgVacAddUsage = "İstifadə: /vac_add <Ad> <YYYY-MM-DD> <YYYY-MM-DD>"
	msgVacBadDate  = "Tarix formatı YYYY-MM-DD olmalıdır."
	msgVacAdded    = "✅ %s: %s → %s əlavə edildi."
	msgVacRmUsage  = "İstifadə: /vac_rm <Ad> <YYYY-MM-DD> <YYYY-MM-DD>"
	msgVacRemoved  = "✅ %s: %s → %s silindi."

	msgTimeSetUsage = "İstifadə: /time_set prompt HH:MM  və ya  /time_set summary HH:MM"
	msgBadClock     = "Saat HH:MM formatında, 00:00-23:59 aralığında olmalıdır."
	msgTimeSaved    = "✅ %s vaxtı %02d:%02d saxlandı.\n💡 /cfg_reload yaz ki, dərhal tətbiq olsun."
	msgLiveSetUsage = "İstifadə: /live_set HH:MM"
	msgLiveSaved    = "✅ LIVE_SCRUM_AT = %s\n💡 /cfg_reload yaz ki, dərhal tətbiq olsun."

	msgSchedInfoHeader = "🕓 Planlayıcı aktivdir. Triggerlər:"
	msgSchedInfoLine   = "• %s: növbəti icra = %s"
	msgSchedInfoEmpty  = "🕓 Planlayıcıda heç bir trigger tapılmadı."
)
