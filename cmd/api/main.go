package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toolshare/internal/config"
	"toolshare/internal/pkg"
	"toolshare/internal/repository/mysql"
	"toolshare/internal/repository/redis"
	"toolshare/internal/router"
	"toolshare/internal/service"
	"toolshare/internal/storage"
)

func main() {
	cfg := config.Load()
	pkg.SetSecrets(cfg.AccessSecret, cfg.RefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		slog.Error("mysql init failed", "error", err)
		os.Exit(1)
	}
	if err := mysql.Migrate(mysql.DB); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}

	// 参考数据启动时解析一次，缺失直接退出
	ref, err := mysql.LoadRef(mysql.DB)
	if err != nil {
		slog.Error("reference data load failed", "error", err)
		os.Exit(1)
	}

	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		slog.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	defer redis.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// s3 客户端进程级构建一次，配置不全直接退出
	uploader, err := storage.New(ctx, storage.Config{
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Region:          cfg.AWSRegion,
		Bucket:          cfg.AWSImageBucket,
	})
	if err != nil {
		slog.Error("s3 uploader init failed", "error", err)
		os.Exit(1)
	}

	producer := pkg.NewMembershipProducer(pkg.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})
	defer producer.Close()

	var notify service.Notifier
	if cfg.SMTPHost != "" {
		smtp := pkg.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}
		notify = func(toEmail, communityName string) error {
			return pkg.SendEmail(smtp, toEmail, "Community invitation", pkg.InviteHTML(communityName))
		}
	}

	userSvc := service.NewUserService(mysql.DB, ref)
	communitySvc := service.NewCommunityService(mysql.DB, ref, notify)
	toolSvc := service.NewToolService(mysql.DB, uploader)

	// 后台任务：过期邀请清扫 + outbox 转发
	sweeper := service.NewInviteSweeper(mysql.DB, ref, time.Duration(cfg.InviteTTLHours)*time.Hour)
	go sweeper.Run(ctx)

	relayer := service.NewOutboxRelayer(mysql.DB, service.KafkaSender(producer))
	go relayer.Run(ctx)

	r := router.InitRouter(userSvc, communitySvc, toolSvc)
	if err := r.Run(cfg.Addr); err != nil {
		slog.Error("server stopped", "error", err)
	}
}
