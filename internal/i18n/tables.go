package i18n

// Keys used by the API client.
const (
	KeyServerUnreachable = "api.server_unreachable"
	KeySessionExpired    = "api.session_expired"
)

var translations = map[string]map[string]string{
	"en": {
		KeyServerUnreachable: "Server not reachable. Please check your connection.",
		KeySessionExpired:    "Session expired. Please login again.",

		"session.timeout_warning": "You will be logged out in 2 minutes due to inactivity.",
		"session.logged_out":      "You were logged out due to inactivity.",

		"login.title":      "Login",
		"login.identifier": "Email or username",
		"login.password":   "Password",
		"login.submit":     "enter to sign in",
		"login.required":   "Email/username and password are required.",

		"nav.ingredients": "Ingredients",
		"nav.recipes":     "Recipes",
		"nav.favorites":   "Favorites",
		"nav.profiles":    "Profiles",
		"nav.scanner":     "Scanner",

		"ingredients.empty":     "No ingredients yet.",
		"ingredients.added":     "Ingredient added",
		"ingredients.deleted":   "Ingredient deleted",
		"ingredients.duplicate": "%q already exists. Press e to edit the existing ingredient.",
		"ingredients.filter":    "Category",
		"ingredients.all":       "All",

		"recipes.empty":      "No recipes generated yet.",
		"recipes.generating": "Generating recipes...",
		"recipes.select":     "Select ingredients with space, then press r.",
		"recipes.remaining":  "Remaining today: %d",

		"favorites.empty":   "No favorites yet.",
		"favorites.added":   "Added to favorites",
		"favorites.removed": "Removed from favorites",
		"favorites.limit":   "Favorite limit reached for your tier.",

		"profiles.empty":    "No diet profiles yet.",
		"profiles.active":   "active",
		"profiles.inactive": "inactive",

		"scanner.prompt":          "Barcode (8-13 digits)",
		"scanner.invalid":         "Invalid barcode. Use 8 to 13 digits.",
		"scanner.not_found":       "Product with barcode %s not found.",
		"scanner.unknown_product": "Unknown product",
		"scanner.added":           "%s added to ingredients",

		"tier.locked":    "This feature requires the %s tier.",
		"common.error":   "Error: ",
		"common.loading": "Loading...",
		"common.yes":     "Yes",
		"common.no":      "No",

		"ingredients.uncategorized": "Uncategorized",
		"ingredients.add_prompt":    "name, category, YYYY-MM-DD",
		"ingredients.updated":       "Ingredient updated",
		"recipes.history":           "History",
		"recipes.generated":         "Generated",
		"profiles.templates":        "Templates",
		"profiles.created":          "Profile created",
		"profiles.limit":            "Profile limit reached for your tier.",
		"scanner.found":             "Found: %s. Press a to add it.",
		"common.logged_out":         "Logged out",
	},
	"de": {
		KeyServerUnreachable: "Server nicht erreichbar. Bitte prüfe deine Verbindung.",
		KeySessionExpired:    "Sitzung abgelaufen. Bitte erneut anmelden.",

		"session.timeout_warning": "Du wirst in 2 Minuten aufgrund von Inaktivität abgemeldet.",
		"session.logged_out":      "Du wurdest aufgrund von Inaktivität abgemeldet.",

		"login.title":      "Anmelden",
		"login.identifier": "E-Mail oder Benutzername",
		"login.password":   "Passwort",
		"login.submit":     "Enter zum Anmelden",
		"login.required":   "E-Mail/Benutzername und Passwort sind erforderlich.",

		"nav.ingredients": "Zutaten",
		"nav.recipes":     "Rezepte",
		"nav.favorites":   "Favoriten",
		"nav.profiles":    "Profile",
		"nav.scanner":     "Scanner",

		"ingredients.empty":     "Noch keine Zutaten.",
		"ingredients.added":     "Zutat hinzugefügt",
		"ingredients.deleted":   "Zutat gelöscht",
		"ingredients.duplicate": "%q existiert bereits. Drücke e, um die vorhandene Zutat zu bearbeiten.",
		"ingredients.filter":    "Kategorie",
		"ingredients.all":       "Alle",

		"recipes.empty":      "Noch keine Rezepte generiert.",
		"recipes.generating": "Rezepte werden generiert...",
		"recipes.select":     "Zutaten mit Leertaste wählen, dann r drücken.",
		"recipes.remaining":  "Heute verbleibend: %d",

		"favorites.empty":   "Noch keine Favoriten.",
		"favorites.added":   "Zu Favoriten hinzugefügt",
		"favorites.removed": "Aus Favoriten entfernt",
		"favorites.limit":   "Favoritenlimit für dein Tier erreicht.",

		"profiles.empty":    "Noch keine Ernährungsprofile.",
		"profiles.active":   "aktiv",
		"profiles.inactive": "inaktiv",

		"scanner.prompt":          "Barcode (8-13 Ziffern)",
		"scanner.invalid":         "Ungültiger Barcode. Bitte 8 bis 13 Ziffern.",
		"scanner.not_found":       "Produkt mit Barcode %s nicht gefunden.",
		"scanner.unknown_product": "Unbekanntes Produkt",
		"scanner.added":           "%s zu Zutaten hinzugefügt",

		"tier.locked":    "Diese Funktion erfordert das Tier %s.",
		"common.error":   "Fehler: ",
		"common.loading": "Lädt...",
		"common.yes":     "Ja",
		"common.no":      "Nein",

		"ingredients.uncategorized": "Ohne Kategorie",
		"ingredients.add_prompt":    "Name, Kategorie, JJJJ-MM-TT",
		"ingredients.updated":       "Zutat aktualisiert",
		"recipes.history":           "Verlauf",
		"recipes.generated":         "Generiert",
		"profiles.templates":        "Vorlagen",
		"profiles.created":          "Profil erstellt",
		"profiles.limit":            "Profillimit für dein Tier erreicht.",
		"scanner.found":             "Gefunden: %s. Drücke a zum Hinzufügen.",
		"common.logged_out":         "Abgemeldet",
	},
	"fr": {
		KeyServerUnreachable: "Serveur injoignable. Veuillez vérifier votre connexion.",
		KeySessionExpired:    "Session expirée. Veuillez vous reconnecter.",

		"session.timeout_warning": "Vous serez déconnecté dans 2 minutes pour inactivité.",
		"session.logged_out":      "Vous avez été déconnecté pour inactivité.",

		"login.title":      "Connexion",
		"login.identifier": "E-mail ou nom d'utilisateur",
		"login.password":   "Mot de passe",

		"nav.ingredients": "Ingrédients",
		"nav.recipes":     "Recettes",
		"nav.favorites":   "Favoris",
		"nav.profiles":    "Profils",

		"ingredients.empty": "Aucun ingrédient.",
		"favorites.empty":   "Aucun favori.",
		"recipes.empty":     "Aucune recette générée.",
		"common.loading":    "Chargement...",
	},
	"es": {
		KeyServerUnreachable: "Servidor no disponible. Comprueba tu conexión.",
		KeySessionExpired:    "Sesión caducada. Inicia sesión de nuevo.",

		"session.timeout_warning": "Se cerrará tu sesión en 2 minutos por inactividad.",
		"session.logged_out":      "Se cerró tu sesión por inactividad.",

		"login.title":      "Iniciar sesión",
		"login.identifier": "Correo o nombre de usuario",
		"login.password":   "Contraseña",

		"nav.ingredients": "Ingredientes",
		"nav.recipes":     "Recetas",
		"nav.favorites":   "Favoritos",
		"nav.profiles":    "Perfiles",

		"ingredients.empty": "Todavía no hay ingredientes.",
		"favorites.empty":   "Todavía no hay favoritos.",
		"recipes.empty":     "Todavía no hay recetas.",
		"common.loading":    "Cargando...",
	},
	"it": {
		KeyServerUnreachable: "Server non raggiungibile. Controlla la connessione.",
		KeySessionExpired:    "Sessione scaduta. Effettua di nuovo l'accesso.",

		"session.timeout_warning": "Verrai disconnesso tra 2 minuti per inattività.",
		"session.logged_out":      "Sei stato disconnesso per inattività.",

		"login.title":      "Accedi",
		"login.identifier": "Email o nome utente",
		"login.password":   "Password",

		"nav.ingredients": "Ingredienti",
		"nav.recipes":     "Ricette",
		"nav.favorites":   "Preferiti",
		"nav.profiles":    "Profili",

		"ingredients.empty": "Nessun ingrediente.",
		"favorites.empty":   "Nessun preferito.",
		"recipes.empty":     "Nessuna ricetta generata.",
		"common.loading":    "Caricamento...",
	},
}
