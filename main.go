package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rajeshwari-1K/AgriSense-AI/classifier"
	"github.com/Rajeshwari-1K/AgriSense-AI/config"
	"github.com/Rajeshwari-1K/AgriSense-AI/database"
	"github.com/Rajeshwari-1K/AgriSense-AI/logger"
	"github.com/Rajeshwari-1K/AgriSense-AI/web"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/service"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			_ = server.Stop()
			logger.CloseLogger()
			return
		}
	}
}

func trainModel(csvPath string, outPath string) {
	model, err := classifier.TrainFromCSV(csvPath)
	if err != nil {
		fmt.Println("training failed:", err)
		os.Exit(1)
	}
	if err := model.Save(outPath); err != nil {
		fmt.Println("writing model artifact failed:", err)
		os.Exit(1)
	}
	fmt.Printf("Model updated successfully with %s! (%d crops -> %s)\n", csvPath, len(model.Centroids), outPath)
}

func checkDB() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println("database connection failed:", err)
		os.Exit(1)
	}
	defer database.CloseDB()

	userService := service.UserService{}
	predictionService := service.PredictionService{}

	users, err := userService.CountUsers()
	if err != nil {
		fmt.Println("count users failed:", err)
		return
	}
	predictions, err := predictionService.CountAll()
	if err != nil {
		fmt.Println("count predictions failed:", err)
		return
	}

	fmt.Println("database:", config.GetDBPath())
	fmt.Println("users in database:", users)
	fmt.Println("predictions in database:", predictions)

	if users > 0 {
		fmt.Println("sample users:")
		sample, err := userService.ListUsers(3)
		if err != nil {
			fmt.Println("list users failed:", err)
			return
		}
		for _, user := range sample {
			fmt.Printf("  - %s (%s)\n", user.Name, user.Email)
		}
	}
}

func main() {
	var rootCmd = &cobra.Command{
		Use: "agrisense",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var trainCmd = &cobra.Command{
		Use:   "train",
		Short: "Train the crop model from a labeled CSV dataset",
		Run: func(cmd *cobra.Command, args []string) {
			csvPath, _ := cmd.Flags().GetString("csv")
			outPath, _ := cmd.Flags().GetString("out")
			trainModel(csvPath, outPath)
		},
	}

	trainCmd.Flags().String("csv", "dataset.csv", "labeled dataset to train from")
	trainCmd.Flags().String("out", config.GetModelPath(), "where to write the model artifact")

	var checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Check database connectivity and show stored counts",
		Run: func(cmd *cobra.Command, args []string) {
			checkDB()
		},
	}

	rootCmd.AddCommand(runCmd, trainCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
