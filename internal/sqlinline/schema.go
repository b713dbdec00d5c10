package sqlinline

// Schema statements applied in order by cmd/migrate. They are idempotent.
var Schema = []string{QCreatePosts, QCreatePostsCreatedAtIndex, QCreateIntegrationTokens}

const QCreatePosts = `--sql 6b2d9f14-0e3a-4c7b-a5f8-91d2c4e6b807
create table if not exists posts (
    id uuid primary key,
    seq bigserial not null,
    name text not null check (length(btrim(name)) > 0),
    prompt text not null check (length(btrim(prompt)) > 0),
    photo text not null check (length(photo) > 0),
    created_at timestamptz not null default now()
);
`

const QCreatePostsCreatedAtIndex = `--sql d47a0b3e-5c89-4f12-b6e0-2a9c8d1f7e54
create index if not exists posts_created_at_idx on posts (created_at desc, seq desc);
`

const QCreateIntegrationTokens = `--sql 2c8e4a1f-d7b0-4e39-a65c-f1093b7d2e84
create table if not exists integration_tokens (
    provider text primary key,
    token text not null,
    properties jsonb not null default '{}'::jsonb,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
`
