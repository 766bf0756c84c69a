package i18n

var messages = map[string]map[string]string{
	Russian: {
		// Main menu
		"add_operation": "Добавить операцию",
		"balance":       "Баланс",
		"report":        "Отчёт",
		"statistics":    "Статистика",
		"goals":         "Цели",
		"reminders":     "Напоминания",
		"pomodoro":      "Помидоро",
		"export":        "Экспорт",
		"settings":      "Настройки",
		"help":          "Справка",
		"back":          "НАЗАД",
		"main_menu":     "Главное меню",

		// Entry pipeline
		"add_income":       "Добавить доход",
		"add_expense":      "Добавить расход",
		"select_category":  "Выберите категорию:",
		"enter_amount":     "Введите сумму в %s:",
		"enter_comment":    "Введите комментарий:",
		"invalid_amount":   "Пожалуйста, введите корректную сумму (положительное число)",
		"please_select":    "Пожалуйста, выберите из предложенных вариантов",
		"operation_added":  "✅ Операция добавлена",
		"operation_failed": "❌ Не удалось сохранить операцию. Попробуйте ещё раз.",
		"error_generic":    "❌ Что-то пошло не так. Попробуйте позже.",
		"unknown_command":  "Не понимаю. Выберите пункт меню или нажмите «Справка».",

		// Balance, reports and statistics
		"balance_text":           "💰 Текущий баланс: %s\n\nОбщий доход: %s\nОбщий расход: %s",
		"select_report_period":   "Выберите период для отчёта",
		"daily_report":           "Ежедневный отчёт",
		"weekly_report":          "Еженедельный отчёт",
		"monthly_report":         "Ежемесячный отчёт",
		"period_day":             "день",
		"period_week":            "неделю",
		"period_month":           "месяц",
		"report_for_period":      "📊 Отчёт за %s",
		"report_chart_title":     "Расходы за %s",
		"income_by_category":     "Доходы по категориям",
		"expense_by_category":    "Расходы по категориям",
		"no_data":                "Нет данных",
		"statistics_title":       "📈 Статистика",
		"total_operations":       "Количество операций",
		"total_income":           "Общий доход",
		"total_expense":          "Общий расход",
		"current_balance":        "Текущий баланс",
		"top_income_categories":  "Топ категорий доходов",
		"top_expense_categories": "Топ категорий расходов",
		"operations_count":       "операций",

		// Export
		"finance_operations": "Ваши финансовые операции",
		"file_too_large":     "Файл слишком большой для отправки",
		"kind_income":        "Доход",
		"kind_expense":       "Расход",
		"csv_date":           "Дата",
		"csv_type":           "Тип",
		"csv_category":       "Категория",
		"csv_amount":         "Сумма",
		"csv_currency":       "Валюта",
		"csv_comment":        "Комментарий",

		// Settings
		"settings_menu":            "⚙️ Настройки:",
		"change_currency":          "Изменить валюту",
		"language":                 "Язык",
		"notifications":            "Уведомления",
		"select_currency":          "Выберите валюту (текущая: %s)",
		"currency_changed":         "✅ Валюта изменена на %s",
		"currency_not_changed":     "Валюта не изменилась",
		"currency_change_failed":   "❌ Не удалось сменить валюту, данные не изменены",
		"select_language":          "Выберите язык",
		"russian_language":         "Русский",
		"english_language":         "English",
		"language_changed":         "✅ Язык изменён на русский",
		"notifications_current":    "🔔 Текущий статус: %s",
		"notifications_status_on":  "✅ Уведомления включены",
		"notifications_status_off": "🔕 Уведомления выключены",
		"notifications_on":         "🔔 Включить уведомления",
		"notifications_off":        "🔕 Выключить уведомления",

		// Goals
		"goals_menu":             "🎯 Цели",
		"add_goal":               "Новая цель",
		"view_goals":             "Мои цели",
		"contribute_goal":        "Пополнить цель",
		"complete_goal":          "Завершить цель",
		"enter_goal_name":        "Введите название цели:",
		"goal_name_too_long":     "Название слишком длинное (максимум %d символов)",
		"enter_goal_target":      "Введите целевую сумму в %s:",
		"enter_goal_deadline":    "Введите срок в формате ДД.ММ.ГГГГ или нажмите «Пропустить»",
		"skip":                   "Пропустить",
		"invalid_deadline":       "Неверная дата. Используйте формат ДД.ММ.ГГГГ и дату в будущем",
		"goal_added":             "🎯 Цель «%s» создана",
		"goals_empty":            "У вас нет активных целей",
		"goals_list_header":      "🎯 Ваши цели:",
		"goal_line":              "%d. %s: %s / %s (%s%%)",
		"goal_deadline":          "до %s",
		"goal_days_left":         "осталось дней: %d",
		"goal_overdue":           "срок истёк",
		"select_goal":            "Отправьте номер цели:",
		"invalid_goal_selection": "Нет цели с таким номером",
		"enter_contribution":     "Введите сумму пополнения в %s:",
		"goal_progress":          "Прогресс «%s»: %s / %s (%s%%)",
		"goal_completed":         "🎉 Поздравляем! Цель «%s» достигнута!",
		"goal_closed":            "✅ Цель «%s» завершена",
		"goal_not_found":         "Цель не найдена",
		"goal_digest_header":     "🎯 Прогресс ваших целей:",

		// Reminders
		"reminders_menu":         "⏰ Напоминания",
		"add_reminder":           "Новое напоминание",
		"view_reminders":         "Мои напоминания",
		"enter_reminder_task":    "О чём напомнить?",
		"task_too_long":          "Текст слишком длинный (максимум %d символов)",
		"select_reminder_period": "Когда напомнить?",
		"today":                  "Сегодня",
		"tomorrow":               "Завтра",
		"next_week":              "Через неделю",
		"enter_time":             "Введите время в формате ЧЧ:ММ",
		"invalid_time":           "Неверный формат времени. Используйте ЧЧ:ММ",
		"past_time":              "Это время уже прошло. Введите другое время",
		"reminder_added":         "⏰ Напоминание установлено на %s",
		"reminders_empty":        "У вас нет активных напоминаний",
		"reminders_list_header":  "⏰ Ваши напоминания:",
		"reminder_line":          "%s: %s",
		"reminder_notification":  "⏰ Напоминание: %s",

		// Pomodoro
		"pomodoro_menu":            "🍅 Помидоро: %d мин работы, %d мин перерыва",
		"pomodoro_start":           "▶️ Старт",
		"pomodoro_stop":            "⏹ Стоп",
		"pomodoro_started":         "🍅 Таймер запущен. Работайте %d минут!",
		"pomodoro_already_running": "Таймер уже запущен",
		"pomodoro_stopped":         "⏹ Таймер остановлен",
		"pomodoro_not_running":     "Таймер не запущен",
		"pomodoro_break":           "☕ Время перерыва: %d минут",
		"pomodoro_work":            "🍅 Перерыв окончен. Работайте %d минут!",

		// Help
		"help_text": "ℹ️ Справка\n\n" +
			"• Добавить операцию: новый доход или расход\n" +
			"• Баланс: текущий баланс\n" +
			"• Отчёт: доходы и расходы за период\n" +
			"• Статистика: подробная статистика по категориям\n" +
			"• Цели: накопления на цели\n" +
			"• Напоминания: разовые напоминания\n" +
			"• Помидоро: таймер фокусировки\n" +
			"• Экспорт: выгрузка операций в CSV\n" +
			"• Настройки: валюта, язык и уведомления\n\n" +
			"«НАЗАД» в любой момент возвращает в главное меню.",
		"welcome_message": "Привет, %s! Я бот для учёта финансов.\n\nВыберите пункт меню.",

		// Admin
		"admin_only":             "⛔ Доступ запрещён",
		"admin_panel":            "🛠 Панель администратора",
		"admin_stats":            "Общая статистика",
		"admin_export":           "Выгрузка Excel",
		"admin_stats_text":       "👥 Пользователей: %d\n🧾 Операций: %d\nОбщий доход: %s\nОбщий расход: %s",
		"admin_user_stats":       "👤 Пользователь %d\nОпераций: %d\nБаланс: %s",
		"admin_user_not_found":   "Пользователь не найден",
		"admin_user_stats_usage": "Использование: /user_stats <id>",
		"admin_add_usage":        "Использование: /add_admin <id>",
		"admin_added":            "✅ Пользователь %d теперь администратор",
		"admin_export_caption":   "Выгрузка данных",
	},
	English: {
		// Main menu
		"add_operation": "Add operation",
		"balance":       "Balance",
		"report":        "Report",
		"statistics":    "Statistics",
		"goals":         "Goals",
		"reminders":     "Reminders",
		"pomodoro":      "Pomodoro",
		"export":        "Export",
		"settings":      "Settings",
		"help":          "Help",
		"back":          "BACK",
		"main_menu":     "Main menu",

		// Entry pipeline
		"add_income":       "Add income",
		"add_expense":      "Add expense",
		"select_category":  "Select category:",
		"enter_amount":     "Enter amount in %s:",
		"enter_comment":    "Enter a comment:",
		"invalid_amount":   "Please enter a valid amount (positive number)",
		"please_select":    "Please select from the available options",
		"operation_added":  "✅ Operation added",
		"operation_failed": "❌ Could not save the operation. Please try again.",
		"error_generic":    "❌ Something went wrong. Please try later.",
		"unknown_command":  "I don't understand. Pick a menu item or press Help.",

		// Balance, reports and statistics
		"balance_text":           "💰 Current balance: %s\n\nTotal income: %s\nTotal expense: %s",
		"select_report_period":   "Select report period",
		"daily_report":           "Daily report",
		"weekly_report":          "Weekly report",
		"monthly_report":         "Monthly report",
		"period_day":             "day",
		"period_week":            "week",
		"period_month":           "month",
		"report_for_period":      "📊 Report for %s",
		"report_chart_title":     "Expenses for %s",
		"income_by_category":     "Income by category",
		"expense_by_category":    "Expense by category",
		"no_data":                "No data available",
		"statistics_title":       "📈 Statistics",
		"total_operations":       "Number of operations",
		"total_income":           "Total income",
		"total_expense":          "Total expense",
		"current_balance":        "Current balance",
		"top_income_categories":  "Top income categories",
		"top_expense_categories": "Top expense categories",
		"operations_count":       "operations",

		// Export
		"finance_operations": "Your financial operations",
		"file_too_large":     "File is too large to send",
		"kind_income":        "Income",
		"kind_expense":       "Expense",
		"csv_date":           "Date",
		"csv_type":           "Type",
		"csv_category":       "Category",
		"csv_amount":         "Amount",
		"csv_currency":       "Currency",
		"csv_comment":        "Comment",

		// Settings
		"settings_menu":            "⚙️ Settings:",
		"change_currency":          "Change currency",
		"language":                 "Language",
		"notifications":            "Notifications",
		"select_currency":          "Select currency (current: %s)",
		"currency_changed":         "✅ Currency changed to %s",
		"currency_not_changed":     "Currency not changed",
		"currency_change_failed":   "❌ Could not change currency, your data was left unchanged",
		"select_language":          "Select language",
		"russian_language":         "Русский",
		"english_language":         "English",
		"language_changed":         "✅ Language changed to English",
		"notifications_current":    "🔔 Current status: %s",
		"notifications_status_on":  "✅ Notifications enabled",
		"notifications_status_off": "🔕 Notifications disabled",
		"notifications_on":         "🔔 Turn on notifications",
		"notifications_off":        "🔕 Turn off notifications",

		// Goals
		"goals_menu":             "🎯 Goals",
		"add_goal":               "New goal",
		"view_goals":             "My goals",
		"contribute_goal":        "Contribute",
		"complete_goal":          "Complete goal",
		"enter_goal_name":        "Enter the goal name:",
		"goal_name_too_long":     "Name is too long (max %d characters)",
		"enter_goal_target":      "Enter the target amount in %s:",
		"enter_goal_deadline":    "Enter a deadline as DD.MM.YYYY or press Skip",
		"skip":                   "Skip",
		"invalid_deadline":       "Invalid date. Use DD.MM.YYYY and a future date",
		"goal_added":             "🎯 Goal \"%s\" created",
		"goals_empty":            "You have no active goals",
		"goals_list_header":      "🎯 Your goals:",
		"goal_line":              "%d. %s: %s / %s (%s%%)",
		"goal_deadline":          "until %s",
		"goal_days_left":         "%d days left",
		"goal_overdue":           "overdue",
		"select_goal":            "Send the goal number:",
		"invalid_goal_selection": "There is no goal with that number",
		"enter_contribution":     "Enter the contribution in %s:",
		"goal_progress":          "Progress of \"%s\": %s / %s (%s%%)",
		"goal_completed":         "🎉 Congratulations! Goal \"%s\" reached!",
		"goal_closed":            "✅ Goal \"%s\" completed",
		"goal_not_found":         "Goal not found",
		"goal_digest_header":     "🎯 Your goals progress:",

		// Reminders
		"reminders_menu":         "⏰ Reminders",
		"add_reminder":           "New reminder",
		"view_reminders":         "My reminders",
		"enter_reminder_task":    "What should I remind you about?",
		"task_too_long":          "Text is too long (max %d characters)",
		"select_reminder_period": "When should I remind you?",
		"today":                  "Today",
		"tomorrow":               "Tomorrow",
		"next_week":              "In a week",
		"enter_time":             "Enter time as HH:MM",
		"invalid_time":           "Invalid time format. Use HH:MM",
		"past_time":              "That time has already passed. Enter another time",
		"reminder_added":         "⏰ Reminder set for %s",
		"reminders_empty":        "You have no active reminders",
		"reminders_list_header":  "⏰ Your reminders:",
		"reminder_line":          "%s: %s",
		"reminder_notification":  "⏰ Reminder: %s",

		// Pomodoro
		"pomodoro_menu":            "🍅 Pomodoro: %d min work, %d min break",
		"pomodoro_start":           "▶️ Start",
		"pomodoro_stop":            "⏹ Stop",
		"pomodoro_started":         "🍅 Timer started. Focus for %d minutes!",
		"pomodoro_already_running": "The timer is already running",
		"pomodoro_stopped":         "⏹ Timer stopped",
		"pomodoro_not_running":     "The timer is not running",
		"pomodoro_break":           "☕ Break time: %d minutes",
		"pomodoro_work":            "🍅 Break is over. Focus for %d minutes!",

		// Help
		"help_text": "ℹ️ Help\n\n" +
			"• Add operation: record income or an expense\n" +
			"• Balance: current balance\n" +
			"• Report: income and expenses for a period\n" +
			"• Statistics: detailed category statistics\n" +
			"• Goals: save towards targets\n" +
			"• Reminders: one-off reminders\n" +
			"• Pomodoro: focus timer\n" +
			"• Export: download operations as CSV\n" +
			"• Settings: currency, language and notifications\n\n" +
			"BACK returns to the main menu at any time.",
		"welcome_message": "Hello, %s! I'm a finance tracking bot.\n\nPick a menu item to get started.",

		// Admin
		"admin_only":             "⛔ Access denied",
		"admin_panel":            "🛠 Admin panel",
		"admin_stats":            "Global statistics",
		"admin_export":           "Excel export",
		"admin_stats_text":       "👥 Users: %d\n🧾 Operations: %d\nTotal income: %s\nTotal expense: %s",
		"admin_user_stats":       "👤 User %d\nOperations: %d\nBalance: %s",
		"admin_user_not_found":   "User not found",
		"admin_user_stats_usage": "Usage: /user_stats <id>",
		"admin_add_usage":        "Usage: /add_admin <id>",
		"admin_added":            "✅ User %d is now an admin",
		"admin_export_caption":   "Data export",
	},
}
