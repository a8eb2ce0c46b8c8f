package videos

const getVideosQuery = `
	SELECT video_id, title, description, thumbnail, duration
	FROM video
	ORDER BY position, id
`

const insertVideoQuery = `
	INSERT INTO video (video_id, title, description, thumbnail, duration, position)
	VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
	ON CONFLICT (video_id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		thumbnail = EXCLUDED.thumbnail,
		duration = EXCLUDED.duration,
		position = EXCLUDED.position
`

const deleteVideosExceptQuery = `
	DELETE FROM video
	WHERE NOT (video_id = ANY($1))
`
