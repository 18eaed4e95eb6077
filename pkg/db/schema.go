package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA temp_store = MEMORY;

-- Cumulative word counts: one row per normalized word, never deleted
CREATE TABLE IF NOT EXISTS words_counter (
    word TEXT NOT NULL PRIMARY KEY,
    count INTEGER NOT NULL CHECK (count >= 1)
);

-- Ingestions: one row per ingest call, best effort
CREATE TABLE IF NOT EXISTS ingestions (
    ingestion_id TEXT PRIMARY KEY,        -- ULID
    source_kind TEXT NOT NULL,            -- literal, file, url
    format TEXT,                          -- txt, csv, json, docx, html
    input_hash TEXT NOT NULL,             -- sha256 of the raw input
    token_count INTEGER NOT NULL DEFAULT 0,
    distinct_words INTEGER NOT NULL DEFAULT 0,
    language TEXT,
    status TEXT NOT NULL,                 -- Ok, Partial, Error
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_ingestions_created ON ingestions(created_at);
CREATE INDEX IF NOT EXISTS idx_ingestions_status ON ingestions(status);
`
