package sqlinline

const QInsertPost = `--sql 3f1c2a9e-7b4d-4e8a-9c51-0d6e2b7f4a13
insert into posts(id, name, prompt, photo, created_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::timestamptz);
`

// QListPosts returns the whole gallery, newest first. seq breaks ties between
// posts created within the same timestamp tick.
const QListPosts = `--sql a8e5d0c7-2f61-4b93-8d4e-5c7a1e9b3f20
select id::text, name, prompt, photo, created_at
from posts
order by created_at desc, seq desc;
`
