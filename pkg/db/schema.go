package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per 'sbp annotate' invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    config_hash TEXT NOT NULL,
    output_dir TEXT NOT NULL,
    source_title TEXT,
    source_authors TEXT,            -- comma separated
    source_url TEXT,
    document_count INTEGER DEFAULT 0,
    success_count INTEGER DEFAULT 0,
    failed_count INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- Documents: every input file a run touched, including failures
CREATE TABLE IF NOT EXISTS documents (
    document_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    source_path TEXT NOT NULL,
    content_hash TEXT,
    status TEXT NOT NULL,           -- success, cached, failed
    error_type TEXT,
    error_message TEXT,
    output_path TEXT,
    language TEXT,
    confidence REAL,                -- 0-10 statblock confidence
    page_count INTEGER DEFAULT 0,
    section_count INTEGER DEFAULT 0,
    line_count INTEGER DEFAULT 0,
    statblock_count INTEGER DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_documents_run ON documents(run_id);
CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(content_hash);

-- Sections in reading order within their page
CREATE TABLE IF NOT EXISTS sections (
    section_id INTEGER PRIMARY KEY AUTOINCREMENT,
    document_id INTEGER NOT NULL,
    page_number INTEGER NOT NULL,
    position INTEGER NOT NULL,
    FOREIGN KEY (document_id) REFERENCES documents(document_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sections_document ON sections(document_id);

CREATE TABLE IF NOT EXISTS section_tags (
    section_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    tag TEXT NOT NULL,
    PRIMARY KEY (section_id, position),
    FOREIGN KEY (section_id) REFERENCES sections(section_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_section_tags_tag ON section_tags(tag);

-- Lines with their page-normalized bounds (NULL when the source had none)
CREATE TABLE IF NOT EXISTS lines (
    line_id INTEGER PRIMARY KEY AUTOINCREMENT,
    section_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    bound_left REAL,
    bound_top REAL,
    bound_width REAL,
    bound_height REAL,
    FOREIGN KEY (section_id) REFERENCES sections(section_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_lines_section ON lines(section_id);

-- Line tags keep their assignment order; duplicates are legitimate
CREATE TABLE IF NOT EXISTS line_tags (
    line_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    tag TEXT NOT NULL,
    PRIMARY KEY (line_id, position),
    FOREIGN KEY (line_id) REFERENCES lines(line_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_line_tags_tag ON line_tags(tag);
`
