package main

import (
	"log"
	"os"

	"github.com/mtihani/portal/apps/api/echo"
	"github.com/mtihani/portal/core"
	"github.com/mtihani/portal/core/assistant"
	"github.com/mtihani/portal/core/exam"
	"github.com/mtihani/portal/core/user"
	"github.com/mtihani/portal/services/email"
	"github.com/mtihani/portal/services/logger"
	"github.com/mtihani/portal/storage/database"
	"github.com/mtihani/portal/storage/database/sqlxrepos"
)

func main() {
	stdLog := log.New(os.Stdout, core.Conf.AppName+" : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	appLog := logsvc.NewRollbarLogger(stdLog, &core.Conf)
	appLog.Enable(!core.Conf.Debug)

	// set up DB
	db, err := database.Open()
	errAndDie(err)
	defer db.Close()
	errAndDie(database.Migrate(db))

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(appLog)
	}
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc)
	examSvc := exam.NewService(sqlxrepos.NewExamRepository(db))

	// set up the assistant; rule tables are built-in, policy patterns may be
	// overridden from a YAML file
	assistantCfg := assistant.DefaultConfig()
	if path := core.Conf.Assistant.PolicyRules; path != "" {
		patterns, err := assistant.LoadPolicyPatterns(path)
		errAndDie(err)
		assistantCfg.Policy = patterns
	}

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:   core.Conf.Server.Addr,
			UserSvc:   usrSvc,
			ExamSvc:   examSvc,
			Assistant: assistant.NewEngine(assistantCfg),
			Logger:    appLog,
		},
	)
	appLog.Info("server starting", "addr", core.Conf.Server.Addr, "env", core.Conf.Env)
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
