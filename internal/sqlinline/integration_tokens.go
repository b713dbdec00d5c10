package sqlinline

const QSelectIntegrationToken = `--sql 5e0b7c21-94d3-4a6f-8e12-c3b9a0d4f716
select token
from integration_tokens
where provider = $1::text
limit 1;
`

const QUpsertIntegrationToken = `--sql b91f3e08-6a2c-4d75-9f4b-0e8d2c7a5b39
insert into integration_tokens (provider, token, properties, created_at, updated_at)
values ($1::text, $2::text, coalesce($3::jsonb, '{}'::jsonb), now(), now())
on conflict (provider) do update
set token = excluded.token,
    properties = excluded.properties,
    updated_at = now();
`
