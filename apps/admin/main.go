package main

import (
	"log"
	"os"

	dummydb "github.com/taskistry/collabo/storage/database/dummy"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	db, err := dummydb.Open()
	if err != nil {
		logger.Fatal(err)
	}

	// start CLI
	cli := commandLine{
		usrRepo:  dummydb.NewUserRepository(db),
		projRepo: dummydb.NewProjectRepository(db),
		taskRepo: dummydb.NewTaskRepository(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
