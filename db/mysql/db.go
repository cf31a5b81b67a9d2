package mysql

import (
	"database/sql"

	"github.com/plumeworks/plume-be/config"
	appDb "github.com/plumeworks/plume-be/db"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
)

type MySQLDB struct {
	*PostDB
	*GroupDB
	*UserDB
	*CommentDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(dsn string) (appDb.Database, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	maxConns := config.EnvInt("DB_MAX_CONNS", 50)
	sqlDB.SetMaxIdleConns(maxConns)
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MySQLDB{
		PostDB:    getPostDB(sess),
		GroupDB:   getGroupDB(sess),
		UserDB:    getUserDB(sess),
		CommentDB: getCommentDB(sess),
		sess:      sess,
		sqlDB:     sqlDB,
	}, nil
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}
