package db

// Table and column names shared by both backends.
const (
	tableTrends = "trends"
	tableRuns   = "trend_runs"
)

var trendColumns = []string{
	"run_id", "keyword", "movie_name", "imdb_id", "source", "link", "search_query", "snippet",
	"content_type", "confidence", "reasoning", "specific_content", "article_content", "days_old",
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS trend_runs (
	id UUID PRIMARY KEY,
	status TEXT NOT NULL DEFAULT 'running',
	candidates INTEGER NOT NULL DEFAULT 0,
	entertainment INTEGER NOT NULL DEFAULT 0,
	non_entertainment INTEGER NOT NULL DEFAULT 0,
	saved INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS trends (
	id BIGSERIAL PRIMARY KEY,
	run_id UUID REFERENCES trend_runs(id) ON DELETE SET NULL,
	keyword TEXT NOT NULL,
	movie_name TEXT,
	imdb_id TEXT,
	source TEXT,
	link TEXT,
	search_query TEXT,
	snippet TEXT,
	content_type TEXT,
	confidence DOUBLE PRECISION,
	reasoning TEXT,
	specific_content TEXT,
	article_content TEXT,
	days_old INTEGER,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_trends_created_at ON trends (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_trends_keyword ON trends (keyword);
`

// sqliteSchema keeps the column layout of the original trends.db file.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS trend_runs (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL DEFAULT 'running',
	candidates INTEGER NOT NULL DEFAULT 0,
	entertainment INTEGER NOT NULL DEFAULT 0,
	non_entertainment INTEGER NOT NULL DEFAULT 0,
	saved INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	completed_at DATETIME
);

CREATE TABLE IF NOT EXISTS trends (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT,
	keyword TEXT,
	movie_name TEXT,
	imdb_id TEXT,
	source TEXT,
	link TEXT,
	search_query TEXT,
	snippet TEXT,
	content_type TEXT,
	confidence REAL,
	reasoning TEXT,
	specific_content TEXT,
	article_content TEXT,
	days_old INTEGER,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_trends_created_at ON trends (created_at DESC);
`
