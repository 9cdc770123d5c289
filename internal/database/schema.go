package database

// schemaMigrations is the ordered planner schema. New changes append a new
// version; applied versions are never edited.
var schemaMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: `
		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			color TEXT NOT NULL DEFAULT '#3b82f6',
			image TEXT NOT NULL DEFAULT '',
			image_id INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS places (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			place TEXT NOT NULL DEFAULT '',
			category_id INTEGER NOT NULL REFERENCES categories(id),
			user TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			image_id INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL DEFAULT 0,
			duration REAL NOT NULL DEFAULT 0,
			visited INTEGER NOT NULL DEFAULT 0,
			favorite INTEGER NOT NULL DEFAULT 0,
			restroom INTEGER NOT NULL DEFAULT 0,
			allowdog INTEGER NOT NULL DEFAULT 0,
			gpx TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_places_user ON places(user);
		CREATE INDEX IF NOT EXISTS idx_places_category ON places(category_id);

		CREATE TABLE IF NOT EXISTS trips (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			user TEXT NOT NULL,
			currency TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			archived INTEGER NOT NULL DEFAULT 0,
			archival_review TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_trips_user ON trips(user);

		CREATE TABLE IF NOT EXISTS trip_place (
			trip_id INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			place_id INTEGER NOT NULL REFERENCES places(id),
			PRIMARY KEY (trip_id, place_id)
		);

		CREATE TABLE IF NOT EXISTS trip_days (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			trip_id INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			dt TEXT NOT NULL DEFAULT '',
			label TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			UNIQUE (trip_id, label)
		);

		CREATE TABLE IF NOT EXISTS trip_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			day_id INTEGER NOT NULL REFERENCES trip_days(id) ON DELETE CASCADE,
			time TEXT NOT NULL,
			text TEXT NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			lat REAL,
			lng REAL,
			place_id INTEGER REFERENCES places(id),
			price REAL NOT NULL DEFAULT 0,
			paid_by TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			gpx TEXT NOT NULL DEFAULT '',
			image_id INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_trip_items_day ON trip_items(day_id);
		CREATE INDEX IF NOT EXISTS idx_trip_items_place ON trip_items(place_id);

		CREATE TABLE IF NOT EXISTS trip_members (
			trip_id INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			user TEXT NOT NULL,
			invited_by TEXT NOT NULL,
			invited_at TEXT NOT NULL,
			joined_at TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (trip_id, user)
		);

		CREATE TABLE IF NOT EXISTS trip_shares (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			trip_id INTEGER NOT NULL UNIQUE REFERENCES trips(id) ON DELETE CASCADE,
			token TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS trip_attachments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			trip_id INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			filename TEXT NOT NULL,
			file_size INTEGER NOT NULL DEFAULT 0,
			uploaded_by TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS trip_item_attachments (
			item_id INTEGER NOT NULL REFERENCES trip_items(id) ON DELETE CASCADE,
			attachment_id INTEGER NOT NULL REFERENCES trip_attachments(id) ON DELETE CASCADE,
			PRIMARY KEY (item_id, attachment_id)
		);

		CREATE TABLE IF NOT EXISTS packing_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			trip_id INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'other',
			qt INTEGER NOT NULL DEFAULT 0,
			packed INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS checklist_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			trip_id INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			checked INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS settings (
			username TEXT PRIMARY KEY,
			map_lat REAL NOT NULL DEFAULT 48.86,
			map_lng REAL NOT NULL DEFAULT 2.34,
			currency TEXT NOT NULL DEFAULT 'EUR',
			tile_layer TEXT NOT NULL DEFAULT '',
			mode_low_network INTEGER NOT NULL DEFAULT 0,
			mode_dark INTEGER NOT NULL DEFAULT 0,
			mode_gpx_in_place INTEGER NOT NULL DEFAULT 0,
			mode_display_visited INTEGER NOT NULL DEFAULT 0,
			mode_map_position INTEGER NOT NULL DEFAULT 0,
			map_provider TEXT NOT NULL DEFAULT 'osm',
			duplicate_dist INTEGER NOT NULL DEFAULT 5
		);

		CREATE TABLE IF NOT EXISTS backups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			filename TEXT NOT NULL DEFAULT '',
			file_size INTEGER NOT NULL DEFAULT 0,
			error_message TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			completed_at TIMESTAMP
		);
		`,
	},
}
