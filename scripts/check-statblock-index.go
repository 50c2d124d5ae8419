// Command check-statblock-index scans the Redis store for stat blocks that
// no longer decode, records missing from the listing index and index entries
// without a record, and offers to repair them.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
)

const (
	recordKeyPrefix = "statblock:record:"
	indexKey        = "statblock:index"
	sequenceKey     = "statblock:seq"
)

type problems struct {
	corrupted []string // record keys to delete
	unindexed []string // lookup keys to append to the index
	dangling  []string // index members with no record
}

func (p *problems) empty() bool {
	return len(p.corrupted) == 0 && len(p.unindexed) == 0 && len(p.dangling) == 0
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning stat blocks...")

	found, checked, err := scan(ctx, client)
	if err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d records: %d corrupted, %d missing from index, %d dangling index entries\n",
		checked, len(found.corrupted), len(found.unindexed), len(found.dangling))

	if found.empty() {
		fmt.Println("Store is consistent!")
		return
	}

	fmt.Print("\nRepair? Corrupted records are DELETED. (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	repair(ctx, client, found)
	fmt.Println("\nRepair complete!")
}

func scan(ctx context.Context, client *redis.Client) (*problems, int, error) {
	found := &problems{}
	checked := 0

	iter := client.Scan(ctx, 0, recordKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		redisKey := iter.Val()
		lookupKey := strings.TrimPrefix(redisKey, recordKeyPrefix)
		checked++

		data, err := client.Get(ctx, redisKey).Bytes()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", redisKey, err)
			continue
		}

		var record entity.Record
		if err := json.Unmarshal(data, &record); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", redisKey)
			found.corrupted = append(found.corrupted, redisKey)
			continue
		}
		if entity.Key(record.Name.String()) != lookupKey {
			fmt.Printf("✗ %s holds %q, which belongs under another key\n", redisKey, record.Name)
			found.corrupted = append(found.corrupted, redisKey)
			continue
		}

		if err := client.ZScore(ctx, indexKey, lookupKey).Err(); err == redis.Nil {
			fmt.Printf("✗ %s is not in the index\n", redisKey)
			found.unindexed = append(found.unindexed, lookupKey)
		} else if err != nil {
			return nil, 0, err
		}
	}
	if err := iter.Err(); err != nil {
		return nil, 0, err
	}

	members, err := client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, 0, err
	}
	for _, member := range members {
		n, err := client.Exists(ctx, recordKeyPrefix+member).Result()
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			fmt.Printf("✗ index entry %q has no record\n", member)
			found.dangling = append(found.dangling, member)
		}
	}

	return found, checked, nil
}

func repair(ctx context.Context, client *redis.Client, found *problems) {
	for _, redisKey := range found.corrupted {
		pipe := client.TxPipeline()
		pipe.Del(ctx, redisKey)
		pipe.ZRem(ctx, indexKey, strings.TrimPrefix(redisKey, recordKeyPrefix))
		if _, err := pipe.Exec(ctx); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", redisKey, err)
		} else {
			fmt.Printf("Deleted %s\n", redisKey)
		}
	}

	for _, key := range found.unindexed {
		seq, err := client.Incr(ctx, sequenceKey).Result()
		if err != nil {
			fmt.Printf("Failed to allocate sequence for %s: %v\n", key, err)
			continue
		}
		if err := client.ZAdd(ctx, indexKey, redis.Z{Score: float64(seq), Member: key}).Err(); err != nil {
			fmt.Printf("Failed to index %s: %v\n", key, err)
		} else {
			fmt.Printf("Indexed %s\n", key)
		}
	}

	for _, member := range found.dangling {
		if err := client.ZRem(ctx, indexKey, member).Err(); err != nil {
			fmt.Printf("Failed to remove index entry %s: %v\n", member, err)
		} else {
			fmt.Printf("Removed index entry %s\n", member)
		}
	}
}
